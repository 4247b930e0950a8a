package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ruteo/lending/internal/application/dto"
	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/internal/domain/port"
	"github.com/ruteo/lending/internal/domain/service"
)

// idempotencyTTL bounds how long a recorded payment result is replayable.
const idempotencyTTL = 24 * time.Hour

// RecordPaymentUseCase splits a payment between profit and capital and
// applies it to a loan.
type RecordPaymentUseCase struct {
	engine      *service.LedgerEngine
	loanRepo    port.LoanRepository
	paymentRepo port.PaymentRepository
	publisher   port.EventPublisher
	idempotency port.IdempotencyStore
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	engine *service.LedgerEngine,
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	publisher port.EventPublisher,
	idempotency port.IdempotencyStore,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		engine:      engine,
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		idempotency: idempotency,
	}
}

// Execute records one payment against a loan. When the request carries an
// idempotency key that was already used, the first recorded result is
// returned and nothing is double-posted.
func (uc *RecordPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordPaymentRequest,
) (dto.PaymentResponse, error) {
	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	// 1. Replay a previously recorded result if the key was seen before.
	if req.IdempotencyKey != "" {
		payload, err := uc.idempotency.Get(ctx, idempotencyKey(req))
		if err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("check idempotency key: %w", err)
		}
		if payload != nil {
			var cached dto.PaymentResponse
			if err := json.Unmarshal(payload, &cached); err != nil {
				return dto.PaymentResponse{}, fmt.Errorf("decode cached payment: %w", err)
			}
			return cached, nil
		}
	}

	// 2. Load the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 3. Split the payment.
	res := uc.engine.ProcessPayment(loan.PaymentInput(req.Amount))

	// 4. Build the payment record.
	payment, err := model.NewPayment(
		req.TenantID, req.LoanID, loan.PendingAmount(), res, loan.BadDebtAt() != nil, receivedAt,
	)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("create payment: %w", err)
	}

	// 5. Apply it to the aggregate.
	loan, err = loan.ApplyPayment(res, payment.ID(), receivedAt)
	if err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("apply payment: %w", err)
	}

	// 6. Persist loan and payment record.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("save payment: %w", err)
	}

	// 7. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	resp := dto.PaymentResponse{
		ID:              payment.ID(),
		LoanID:          loan.ID(),
		Amount:          res.Amount,
		ProfitAmount:    res.ProfitAmount,
		ReturnToCapital: res.ReturnToCapital,
		PendingBefore:   payment.PendingBefore(),
		PendingAfter:    res.NewPendingAmount,
		BadDebt:         payment.BadDebt(),
		LoanStatus:      loan.Status().String(),
		ReceivedAt:      receivedAt,
	}

	// 8. Remember the result for retries.
	if req.IdempotencyKey != "" {
		payload, err := json.Marshal(resp)
		if err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("encode payment for idempotency: %w", err)
		}
		if err := uc.idempotency.Save(ctx, idempotencyKey(req), payload, idempotencyTTL); err != nil {
			return dto.PaymentResponse{}, fmt.Errorf("save idempotency key: %w", err)
		}
	}

	return resp, nil
}

// idempotencyKey scopes the caller-supplied key to the tenant so keys cannot
// collide across tenants.
func idempotencyKey(req dto.RecordPaymentRequest) string {
	return req.TenantID + ":" + req.IdempotencyKey
}
