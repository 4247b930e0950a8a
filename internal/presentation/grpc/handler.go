package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ruteo/lending/internal/application/dto"
	"github.com/ruteo/lending/internal/application/usecase"
	"github.com/ruteo/lending/pkg/money"
)

// LoanLedgerHandler implements the gRPC loan ledger service. All monetary
// amounts are denominated in the handler's configured currency.
type LoanLedgerHandler struct {
	UnimplementedLoanLedgerServiceServer

	originate    *usecase.OriginateLoanUseCase
	renew        *usecase.RenewLoanUseCase
	payment      *usecase.RecordPaymentUseCase
	badDebt      *usecase.MarkBadDebtUseCase
	getLoan      *usecase.GetLoanUseCase
	listPayments *usecase.ListLoanPaymentsUseCase
	currency     money.Currency
}

// NewLoanLedgerHandler creates a new handler with all use-case dependencies.
func NewLoanLedgerHandler(
	originate *usecase.OriginateLoanUseCase,
	renew *usecase.RenewLoanUseCase,
	payment *usecase.RecordPaymentUseCase,
	badDebt *usecase.MarkBadDebtUseCase,
	getLoan *usecase.GetLoanUseCase,
	listPayments *usecase.ListLoanPaymentsUseCase,
	currency money.Currency,
) *LoanLedgerHandler {
	return &LoanLedgerHandler{
		originate:    originate,
		renew:        renew,
		payment:      payment,
		badDebt:      badDebt,
		getLoan:      getLoan,
		listPayments: listPayments,
		currency:     currency,
	}
}

// ---------------------------------------------------------------------------
// Wire messages
// ---------------------------------------------------------------------------

// Monetary fields cross the wire as decimal strings so no precision is lost
// in transit; timestamps as RFC 3339.

// OriginateLoanRequest represents the gRPC request for signing a new loan.
type OriginateLoanRequest struct {
	TenantID        string `json:"tenant_id"`
	BorrowerID      string `json:"borrower_id"`
	RequestedAmount string `json:"requested_amount"`
	Rate            string `json:"rate"`
	WeekDuration    int    `json:"week_duration"`
	SignDate        string `json:"sign_date,omitempty"`
}

// RenewLoanRequest represents the gRPC request for renewing a loan.
type RenewLoanRequest struct {
	TenantID        string `json:"tenant_id"`
	PreviousLoanID  string `json:"previous_loan_id"`
	RequestedAmount string `json:"requested_amount"`
	Rate            string `json:"rate"`
	WeekDuration    int    `json:"week_duration"`
	SignDate        string `json:"sign_date,omitempty"`
}

// RecordPaymentRequest represents the gRPC request for recording a payment.
type RecordPaymentRequest struct {
	TenantID       string `json:"tenant_id"`
	LoanID         string `json:"loan_id"`
	Amount         string `json:"amount"`
	ReceivedAt     string `json:"received_at,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// MarkBadDebtRequest represents the gRPC request for writing off a loan.
type MarkBadDebtRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// GetLoanRequest represents the gRPC request for retrieving a loan.
type GetLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// ListLoanPaymentsRequest represents the gRPC request for listing a loan's payments.
type ListLoanPaymentsRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// ScheduleEntry represents one weekly installment on the wire.
type ScheduleEntry struct {
	Week             int    `json:"week"`
	DueDate          string `json:"due_date"`
	Amount           string `json:"amount"`
	RemainingBalance string `json:"remaining_balance"`
}

// LoanResponse represents the gRPC response for a loan.
type LoanResponse struct {
	ID                    string           `json:"id"`
	TenantID              string           `json:"tenant_id"`
	BorrowerID            string           `json:"borrower_id"`
	PreviousLoanID        string           `json:"previous_loan_id,omitempty"`
	Rate                  string           `json:"rate"`
	WeekDuration          int              `json:"week_duration"`
	SignDate              string           `json:"sign_date"`
	RequestedAmount       string           `json:"requested_amount"`
	AmountDisbursed       string           `json:"amount_disbursed"`
	ProfitBase            string           `json:"profit_base"`
	InheritedProfit       string           `json:"inherited_profit"`
	ProfitAmount          string           `json:"profit_amount"`
	ReturnToCapital       string           `json:"return_to_capital"`
	TotalDebtAcquired     string           `json:"total_debt_acquired"`
	PendingAmount         string           `json:"pending_amount"`
	ExpectedWeeklyPayment string           `json:"expected_weekly_payment"`
	ProfitRatio           string           `json:"profit_ratio"`
	Currency              string           `json:"currency"`
	Status                string           `json:"status"`
	BadDebtAt             string           `json:"bad_debt_at,omitempty"`
	Schedule              []*ScheduleEntry `json:"schedule,omitempty"`
	CreatedAt             string           `json:"created_at"`
	UpdatedAt             string           `json:"updated_at"`
}

// PaymentResponse represents the gRPC response for a recorded payment.
type PaymentResponse struct {
	ID              string `json:"id"`
	LoanID          string `json:"loan_id"`
	Amount          string `json:"amount"`
	ProfitAmount    string `json:"profit_amount"`
	ReturnToCapital string `json:"return_to_capital"`
	PendingBefore   string `json:"pending_before"`
	PendingAfter    string `json:"pending_after"`
	Currency        string `json:"currency"`
	BadDebt         bool   `json:"bad_debt"`
	LoanStatus      string `json:"loan_status"`
	ReceivedAt      string `json:"received_at"`
}

// ListLoanPaymentsResponse represents the gRPC response for listing payments.
type ListLoanPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
}

// ---------------------------------------------------------------------------
// Service methods
// ---------------------------------------------------------------------------

// OriginateLoan handles the gRPC OriginateLoan request.
func (h *LoanLedgerHandler) OriginateLoan(ctx context.Context, req *OriginateLoanRequest) (*LoanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	amount, err := h.parseAmount(req.RequestedAmount, "requested_amount")
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal(req.Rate, "rate")
	if err != nil {
		return nil, err
	}
	signDate, err := parseTime(req.SignDate, "sign_date")
	if err != nil {
		return nil, err
	}

	resp, err := h.originate.Execute(ctx, dto.OriginateLoanRequest{
		TenantID:        req.TenantID,
		BorrowerID:      req.BorrowerID,
		RequestedAmount: amount.Amount(),
		Rate:            rate,
		WeekDuration:    req.WeekDuration,
		SignDate:        signDate,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return h.toLoanMessage(resp), nil
}

// RenewLoan handles the gRPC RenewLoan request.
func (h *LoanLedgerHandler) RenewLoan(ctx context.Context, req *RenewLoanRequest) (*LoanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	amount, err := h.parseAmount(req.RequestedAmount, "requested_amount")
	if err != nil {
		return nil, err
	}
	rate, err := parseDecimal(req.Rate, "rate")
	if err != nil {
		return nil, err
	}
	signDate, err := parseTime(req.SignDate, "sign_date")
	if err != nil {
		return nil, err
	}

	resp, err := h.renew.Execute(ctx, dto.RenewLoanRequest{
		TenantID:        req.TenantID,
		PreviousLoanID:  req.PreviousLoanID,
		RequestedAmount: amount.Amount(),
		Rate:            rate,
		WeekDuration:    req.WeekDuration,
		SignDate:        signDate,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return h.toLoanMessage(resp), nil
}

// RecordPayment handles the gRPC RecordPayment request.
func (h *LoanLedgerHandler) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*PaymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	amount, err := h.parseAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}
	receivedAt, err := parseTime(req.ReceivedAt, "received_at")
	if err != nil {
		return nil, err
	}

	resp, err := h.payment.Execute(ctx, dto.RecordPaymentRequest{
		TenantID:       req.TenantID,
		LoanID:         req.LoanID,
		Amount:         amount.Amount(),
		ReceivedAt:     receivedAt,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return h.toPaymentMessage(resp), nil
}

// MarkBadDebt handles the gRPC MarkBadDebt request.
func (h *LoanLedgerHandler) MarkBadDebt(ctx context.Context, req *MarkBadDebtRequest) (*LoanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.badDebt.Execute(ctx, dto.MarkBadDebtRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return h.toLoanMessage(resp), nil
}

// GetLoan handles the gRPC GetLoan request.
func (h *LoanLedgerHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*LoanResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
	})
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return h.toLoanMessage(resp), nil
}

// ListLoanPayments handles the gRPC ListLoanPayments request.
func (h *LoanLedgerHandler) ListLoanPayments(ctx context.Context, req *ListLoanPaymentsRequest) (*ListLoanPaymentsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	payments, err := h.listPayments.Execute(ctx, dto.ListPaymentsRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	out := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = h.toPaymentMessage(p)
	}
	return &ListLoanPaymentsResponse{Payments: out}, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// parseAmount parses a monetary wire field in the handler's currency and
// rejects negative values before they reach the ledger.
func (h *LoanLedgerHandler) parseAmount(value, field string) (money.Money, error) {
	if value == "" {
		return money.Money{}, status.Error(codes.InvalidArgument, fmt.Sprintf("%s is required", field))
	}
	m, err := money.NewFromString(value, h.currency.Code())
	if err != nil {
		return money.Money{}, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid %s: %v", field, err))
	}
	if m.IsNegative() {
		return money.Money{}, status.Error(codes.InvalidArgument, fmt.Sprintf("%s must not be negative", field))
	}
	return m.RoundCents(), nil
}

func parseDecimal(value, field string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, status.Error(codes.InvalidArgument, fmt.Sprintf("%s is required", field))
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid %s: %v", field, err))
	}
	return d, nil
}

func parseTime(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid %s: %v", field, err))
	}
	return t, nil
}

func (h *LoanLedgerHandler) toLoanMessage(resp dto.LoanResponse) *LoanResponse {
	entries := make([]*ScheduleEntry, len(resp.Schedule))
	for i, e := range resp.Schedule {
		entries[i] = &ScheduleEntry{
			Week:             e.Week,
			DueDate:          e.DueDate.Format(time.RFC3339),
			Amount:           e.Amount.StringFixed(2),
			RemainingBalance: e.RemainingBalance.StringFixed(2),
		}
	}

	var badDebtAt string
	if resp.BadDebtAt != nil {
		badDebtAt = resp.BadDebtAt.Format(time.RFC3339)
	}

	return &LoanResponse{
		ID:                    resp.ID,
		TenantID:              resp.TenantID,
		BorrowerID:            resp.BorrowerID,
		PreviousLoanID:        resp.PreviousLoanID,
		Rate:                  resp.Rate.String(),
		WeekDuration:          resp.WeekDuration,
		SignDate:              resp.SignDate.Format(time.RFC3339),
		RequestedAmount:       resp.RequestedAmount.StringFixed(2),
		AmountDisbursed:       resp.AmountDisbursed.StringFixed(2),
		ProfitBase:            resp.ProfitBase.StringFixed(2),
		InheritedProfit:       resp.InheritedProfit.StringFixed(2),
		ProfitAmount:          resp.ProfitAmount.StringFixed(2),
		ReturnToCapital:       resp.ReturnToCapital.StringFixed(2),
		TotalDebtAcquired:     resp.TotalDebtAcquired.StringFixed(2),
		PendingAmount:         resp.PendingAmount.StringFixed(2),
		ExpectedWeeklyPayment: resp.ExpectedWeeklyPayment.StringFixed(2),
		ProfitRatio:           resp.ProfitRatio.Round(4).String(),
		Currency:              h.currency.Code(),
		Status:                resp.Status,
		BadDebtAt:             badDebtAt,
		Schedule:              entries,
		CreatedAt:             resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             resp.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *LoanLedgerHandler) toPaymentMessage(resp dto.PaymentResponse) *PaymentResponse {
	return &PaymentResponse{
		ID:              resp.ID,
		LoanID:          resp.LoanID,
		Amount:          resp.Amount.StringFixed(2),
		ProfitAmount:    resp.ProfitAmount.StringFixed(2),
		ReturnToCapital: resp.ReturnToCapital.StringFixed(2),
		PendingBefore:   resp.PendingBefore.StringFixed(2),
		PendingAfter:    resp.PendingAfter.StringFixed(2),
		Currency:        h.currency.Code(),
		BadDebt:         resp.BadDebt,
		LoanStatus:      resp.LoanStatus,
		ReceivedAt:      resp.ReceivedAt.Format(time.RFC3339),
	}
}
