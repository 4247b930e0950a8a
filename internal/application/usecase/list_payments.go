package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ruteo/lending/internal/application/dto"
	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/internal/domain/port"
	"github.com/ruteo/lending/internal/domain/service"
)

// ListLoanPaymentsUseCase lists the payments recorded against a loan.
type ListLoanPaymentsUseCase struct {
	paymentRepo port.PaymentRepository
}

// NewListLoanPaymentsUseCase wires dependencies.
func NewListLoanPaymentsUseCase(paymentRepo port.PaymentRepository) *ListLoanPaymentsUseCase {
	return &ListLoanPaymentsUseCase{paymentRepo: paymentRepo}
}

// Execute returns payment responses ordered as the repository returns them,
// oldest first.
func (uc *ListLoanPaymentsUseCase) Execute(
	ctx context.Context,
	req dto.ListPaymentsRequest,
) ([]dto.PaymentResponse, error) {
	payments, err := uc.paymentRepo.ListByLoanID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = toPaymentResponse(p)
	}
	return out, nil
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	// Only the presence of a write-off marker matters to status derivation.
	var badDebtAt *time.Time
	if p.BadDebt() {
		t := p.ReceivedAt()
		badDebtAt = &t
	}

	return dto.PaymentResponse{
		ID:              p.ID(),
		LoanID:          p.LoanID(),
		Amount:          p.Amount(),
		ProfitAmount:    p.ProfitAmount(),
		ReturnToCapital: p.ReturnToCapital(),
		PendingBefore:   p.PendingBefore(),
		PendingAfter:    p.PendingAfter(),
		BadDebt:         p.BadDebt(),
		LoanStatus:      service.DeriveLoanStatus(p.PendingAfter(), badDebtAt).String(),
		ReceivedAt:      p.ReceivedAt(),
	}
}
