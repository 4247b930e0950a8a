package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruteo/lending/internal/domain/valueobject"
)

// Epsilon is the tolerance under which a pending balance is considered
// settled. Payments land in whole cents, so anything below one cent left
// over is rounding residue, not real debt.
var Epsilon = decimal.NewFromFloat(0.01)

// ---------------------------------------------------------------------------
// LedgerEngine (loan accounting kernel)
// ---------------------------------------------------------------------------

// LedgerEngine is a domain service that computes loan origination snapshots
// and payment splits. Every method is a pure function over decimal inputs:
// no I/O, no state, and no errors — malformed inputs are clamped to sane
// values rather than rejected, because callers validate user-facing input
// before reaching the engine and a payment must never fail to be bookable.
type LedgerEngine struct{}

// NewLedgerEngine creates a new LedgerEngine.
func NewLedgerEngine() *LedgerEngine {
	return &LedgerEngine{}
}

// LoanOriginationInput carries the terms of a new or renewed loan.
type LoanOriginationInput struct {
	// RequestedAmount is the principal the borrower asked for.
	RequestedAmount decimal.Decimal
	// Rate is the fractional profit rate for the full term (0.40 = 40%).
	Rate decimal.Decimal
	// WeekDuration is the number of weekly installments.
	WeekDuration int
}

// PriorLoanState is the financial snapshot of the loan being absorbed by a
// renewal. Nil for brand-new loans.
type PriorLoanState struct {
	// PendingAmount is the unpaid balance still owed on the prior loan.
	PendingAmount decimal.Decimal
	// ProfitAmount is the total profit embedded in the prior loan's debt.
	ProfitAmount decimal.Decimal
	// TotalDebtAcquired is the prior loan's debt at its own origination.
	TotalDebtAcquired decimal.Decimal
}

// LoanOriginationResult is the complete financial snapshot of a loan at
// signing time.
type LoanOriginationResult struct {
	RequestedAmount       decimal.Decimal
	AmountDisbursed       decimal.Decimal
	ProfitBase            decimal.Decimal
	InheritedProfit       decimal.Decimal
	ProfitAmount          decimal.Decimal
	ReturnToCapital       decimal.Decimal
	TotalDebtAcquired     decimal.Decimal
	PendingAmount         decimal.Decimal
	ExpectedWeeklyPayment decimal.Decimal
	ProfitRatio           decimal.Decimal
}

// PaymentInput describes an incoming payment against a loan's current
// financial snapshot.
type PaymentInput struct {
	Amount            decimal.Decimal
	LoanProfitAmount  decimal.Decimal
	LoanTotalDebt     decimal.Decimal
	LoanPendingAmount decimal.Decimal
	IsBadDebt         bool
}

// PaymentResult is the computed split of one payment.
type PaymentResult struct {
	Amount           decimal.Decimal
	ProfitAmount     decimal.Decimal
	ReturnToCapital  decimal.Decimal
	NewPendingAmount decimal.Decimal
	FullyPaid        bool
}

// PaymentDistribution is the profit/capital split of an amount at a given
// profit ratio.
type PaymentDistribution struct {
	Profit          decimal.Decimal
	ReturnToCapital decimal.Decimal
}

// CreateLoan computes the origination snapshot for a loan. A non-nil prior
// state marks this as a renewal: the unpaid profit fraction of the prior
// loan carries forward into the new loan's profit, and the physical
// disbursement shrinks by the balance being absorbed.
func (e *LedgerEngine) CreateLoan(in LoanOriginationInput, prior *PriorLoanState) LoanOriginationResult {
	profitBase := in.RequestedAmount.Mul(in.Rate)

	inheritedProfit := decimal.Zero
	amountDisbursed := in.RequestedAmount
	if prior != nil {
		// The inheritance contract: carry forward the unpaid balance scaled
		// by the fraction of that balance which was profit — never the raw
		// pending balance itself.
		inheritedProfit = CalculateInheritedProfit(
			prior.PendingAmount, prior.ProfitAmount, prior.TotalDebtAcquired,
		)
		amountDisbursed = in.RequestedAmount.Sub(prior.PendingAmount)
		if amountDisbursed.IsNegative() {
			amountDisbursed = decimal.Zero
		}
	}

	profitAmount := profitBase.Add(inheritedProfit)
	totalDebt := in.RequestedAmount.Add(profitAmount)

	weeklyPayment := decimal.Zero
	if in.WeekDuration > 0 {
		weeklyPayment = totalDebt.Div(decimal.NewFromInt(int64(in.WeekDuration)))
	}

	return LoanOriginationResult{
		RequestedAmount:       in.RequestedAmount,
		AmountDisbursed:       amountDisbursed,
		ProfitBase:            profitBase,
		InheritedProfit:       inheritedProfit,
		ProfitAmount:          profitAmount,
		ReturnToCapital:       in.RequestedAmount,
		TotalDebtAcquired:     totalDebt,
		PendingAmount:         totalDebt,
		ExpectedWeeklyPayment: weeklyPayment,
		ProfitRatio:           CalculateProfitRatio(profitAmount, totalDebt),
	}
}

// ProcessPayment splits a payment between profit recognition and capital
// recovery and computes the loan's new pending balance.
//
// Once a loan is written off, every recovered peso is booked as profit:
// the capital was already expensed at write-off time.
func (e *LedgerEngine) ProcessPayment(in PaymentInput) PaymentResult {
	var profit, capital decimal.Decimal

	if in.IsBadDebt {
		profit = in.Amount
		capital = decimal.Zero
	} else {
		ratio := CalculateProfitRatio(in.LoanProfitAmount, in.LoanTotalDebt)
		profit = in.Amount.Mul(ratio)
		// Profit attributed to a single payment can never exceed the payment
		// itself, even when upstream data is corrupt (profit > total debt).
		if profit.GreaterThan(in.Amount) {
			profit = in.Amount
		}
		capital = in.Amount.Sub(profit)
	}

	newPending := in.LoanPendingAmount.Sub(in.Amount)
	if newPending.IsNegative() {
		newPending = decimal.Zero
	}

	return PaymentResult{
		Amount:           in.Amount,
		ProfitAmount:     profit,
		ReturnToCapital:  capital,
		NewPendingAmount: newPending,
		FullyPaid:        newPending.LessThanOrEqual(Epsilon),
	}
}

// ---------------------------------------------------------------------------
// Derivation helpers
// ---------------------------------------------------------------------------

// CalculateProfitRatio returns profitAmount / totalDebt, or zero when the
// total debt is zero or negative. This is the only divide-by-zero guard in
// the engine; both calculators route through it.
func CalculateProfitRatio(profitAmount, totalDebt decimal.Decimal) decimal.Decimal {
	if totalDebt.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return profitAmount.Div(totalDebt)
}

// CalculatePaymentDistribution splits an amount at the given profit ratio.
func CalculatePaymentDistribution(amount, ratio decimal.Decimal) PaymentDistribution {
	profit := amount.Mul(ratio)
	return PaymentDistribution{
		Profit:          profit,
		ReturnToCapital: amount.Sub(profit),
	}
}

// CalculateInheritedProfit returns the profit portion of a prior loan's
// unpaid balance: pendingAmount scaled by the prior loan's profit ratio.
func CalculateInheritedProfit(pendingAmount, profitAmount, totalDebtAcquired decimal.Decimal) decimal.Decimal {
	return pendingAmount.Mul(CalculateProfitRatio(profitAmount, totalDebtAcquired))
}

// DeriveLoanStatus classifies a loan from its pending balance and bad-debt
// marker. A settled balance wins over the bad-debt marker so that a written
// off loan that is somehow recovered in full reports as FINISHED.
func DeriveLoanStatus(pendingAmount decimal.Decimal, badDebtAt *time.Time) valueobject.LoanStatus {
	switch {
	case pendingAmount.LessThanOrEqual(Epsilon):
		return valueobject.LoanStatusFinished
	case badDebtAt != nil:
		return valueobject.LoanStatusBadDebt
	default:
		return valueobject.LoanStatusActive
	}
}
