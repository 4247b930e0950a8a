package event

import (
	"github.com/shopspring/decimal"

	"github.com/ruteo/lending/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Loan Events
// ---------------------------------------------------------------------------

// LoanOriginated is raised when a brand-new loan is signed.
type LoanOriginated struct {
	events.BaseEvent
	BorrowerID            string          `json:"borrower_id"`
	RequestedAmount       decimal.Decimal `json:"requested_amount"`
	AmountDisbursed       decimal.Decimal `json:"amount_disbursed"`
	ProfitAmount          decimal.Decimal `json:"profit_amount"`
	TotalDebtAcquired     decimal.Decimal `json:"total_debt_acquired"`
	ExpectedWeeklyPayment decimal.Decimal `json:"expected_weekly_payment"`
	WeekDuration          int             `json:"week_duration"`
}

func NewLoanOriginated(
	loanID, tenantID, borrowerID string,
	requested, disbursed, profit, totalDebt, weeklyPayment decimal.Decimal,
	weekDuration int,
) LoanOriginated {
	return LoanOriginated{
		BaseEvent:             events.NewBaseEvent("lending.loan.originated", loanID, "Loan", tenantID),
		BorrowerID:            borrowerID,
		RequestedAmount:       requested,
		AmountDisbursed:       disbursed,
		ProfitAmount:          profit,
		TotalDebtAcquired:     totalDebt,
		ExpectedWeeklyPayment: weeklyPayment,
		WeekDuration:          weekDuration,
	}
}

// LoanRenewed is raised on the new loan when it absorbs a prior loan's
// unpaid balance.
type LoanRenewed struct {
	events.BaseEvent
	PreviousLoanID    string          `json:"previous_loan_id"`
	BorrowerID        string          `json:"borrower_id"`
	AbsorbedBalance   decimal.Decimal `json:"absorbed_balance"`
	InheritedProfit   decimal.Decimal `json:"inherited_profit"`
	AmountDisbursed   decimal.Decimal `json:"amount_disbursed"`
	TotalDebtAcquired decimal.Decimal `json:"total_debt_acquired"`
}

func NewLoanRenewed(
	loanID, tenantID, previousLoanID, borrowerID string,
	absorbedBalance, inheritedProfit, disbursed, totalDebt decimal.Decimal,
) LoanRenewed {
	return LoanRenewed{
		BaseEvent:         events.NewBaseEvent("lending.loan.renewed", loanID, "Loan", tenantID),
		PreviousLoanID:    previousLoanID,
		BorrowerID:        borrowerID,
		AbsorbedBalance:   absorbedBalance,
		InheritedProfit:   inheritedProfit,
		AmountDisbursed:   disbursed,
		TotalDebtAcquired: totalDebt,
	}
}

// PaymentApplied is raised when a payment is split and applied to a loan.
type PaymentApplied struct {
	events.BaseEvent
	PaymentID       string          `json:"payment_id"`
	Amount          decimal.Decimal `json:"amount"`
	ProfitAmount    decimal.Decimal `json:"profit_amount"`
	ReturnToCapital decimal.Decimal `json:"return_to_capital"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	BadDebt         bool            `json:"bad_debt"`
}

func NewPaymentApplied(
	loanID, tenantID, paymentID string,
	amount, profit, capital, pending decimal.Decimal,
	badDebt bool,
) PaymentApplied {
	return PaymentApplied{
		BaseEvent:       events.NewBaseEvent("lending.loan.payment_applied", loanID, "Loan", tenantID),
		PaymentID:       paymentID,
		Amount:          amount,
		ProfitAmount:    profit,
		ReturnToCapital: capital,
		PendingAmount:   pending,
		BadDebt:         badDebt,
	}
}

// LoanFinished is raised when a payment settles the pending balance.
type LoanFinished struct {
	events.BaseEvent
}

func NewLoanFinished(loanID, tenantID string) LoanFinished {
	return LoanFinished{
		BaseEvent: events.NewBaseEvent("lending.loan.finished", loanID, "Loan", tenantID),
	}
}

// LoanWrittenOff is raised when a loan is marked uncollectable.
type LoanWrittenOff struct {
	events.BaseEvent
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

func NewLoanWrittenOff(loanID, tenantID string, pending decimal.Decimal) LoanWrittenOff {
	return LoanWrittenOff{
		BaseEvent:     events.NewBaseEvent("lending.loan.written_off", loanID, "Loan", tenantID),
		PendingAmount: pending,
	}
}
