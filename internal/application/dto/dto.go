package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// OriginateLoanRequest carries the terms for a brand-new loan.
type OriginateLoanRequest struct {
	TenantID        string          `json:"tenant_id"`
	BorrowerID      string          `json:"borrower_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Rate            decimal.Decimal `json:"rate"`
	WeekDuration    int             `json:"week_duration"`
	SignDate        time.Time       `json:"sign_date"`
}

// RenewLoanRequest carries the terms for a renewal that absorbs the unpaid
// balance of a prior loan.
type RenewLoanRequest struct {
	TenantID        string          `json:"tenant_id"`
	PreviousLoanID  string          `json:"previous_loan_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Rate            decimal.Decimal `json:"rate"`
	WeekDuration    int             `json:"week_duration"`
	SignDate        time.Time       `json:"sign_date"`
}

// RecordPaymentRequest carries the data for a loan payment. IdempotencyKey
// is optional; when set, retried requests return the first recorded result.
type RecordPaymentRequest struct {
	TenantID       string          `json:"tenant_id"`
	LoanID         string          `json:"loan_id"`
	Amount         decimal.Decimal `json:"amount"`
	ReceivedAt     time.Time       `json:"received_at"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
}

// MarkBadDebtRequest identifies a loan to write off.
type MarkBadDebtRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// ListPaymentsRequest identifies a loan whose payments to list.
type ListPaymentsRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScheduleEntryResponse represents a single weekly installment.
type ScheduleEntryResponse struct {
	Week             int             `json:"week"`
	DueDate          time.Time       `json:"due_date"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                    string                  `json:"id"`
	TenantID              string                  `json:"tenant_id"`
	BorrowerID            string                  `json:"borrower_id"`
	PreviousLoanID        string                  `json:"previous_loan_id,omitempty"`
	Rate                  decimal.Decimal         `json:"rate"`
	WeekDuration          int                     `json:"week_duration"`
	SignDate              time.Time               `json:"sign_date"`
	RequestedAmount       decimal.Decimal         `json:"requested_amount"`
	AmountDisbursed       decimal.Decimal         `json:"amount_disbursed"`
	ProfitBase            decimal.Decimal         `json:"profit_base"`
	InheritedProfit       decimal.Decimal         `json:"inherited_profit"`
	ProfitAmount          decimal.Decimal         `json:"profit_amount"`
	ReturnToCapital       decimal.Decimal         `json:"return_to_capital"`
	TotalDebtAcquired     decimal.Decimal         `json:"total_debt_acquired"`
	PendingAmount         decimal.Decimal         `json:"pending_amount"`
	ExpectedWeeklyPayment decimal.Decimal         `json:"expected_weekly_payment"`
	ProfitRatio           decimal.Decimal         `json:"profit_ratio"`
	Status                string                  `json:"status"`
	BadDebtAt             *time.Time              `json:"bad_debt_at,omitempty"`
	Schedule              []ScheduleEntryResponse `json:"schedule,omitempty"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
}

// PaymentResponse is the external representation of a recorded payment.
type PaymentResponse struct {
	ID              string          `json:"id"`
	LoanID          string          `json:"loan_id"`
	Amount          decimal.Decimal `json:"amount"`
	ProfitAmount    decimal.Decimal `json:"profit_amount"`
	ReturnToCapital decimal.Decimal `json:"return_to_capital"`
	PendingBefore   decimal.Decimal `json:"pending_before"`
	PendingAfter    decimal.Decimal `json:"pending_after"`
	BadDebt         bool            `json:"bad_debt"`
	LoanStatus      string          `json:"loan_status"`
	ReceivedAt      time.Time       `json:"received_at"`
}
