package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ruteo/lending/internal/application/dto"
	"github.com/ruteo/lending/internal/domain/port"
)

// MarkBadDebtUseCase writes off an uncollectable loan.
type MarkBadDebtUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewMarkBadDebtUseCase wires dependencies.
func NewMarkBadDebtUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *MarkBadDebtUseCase {
	return &MarkBadDebtUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute transitions a loan to BAD_DEBT and records the write-off date.
// Later recoveries against the loan are booked as pure profit.
func (uc *MarkBadDebtUseCase) Execute(
	ctx context.Context,
	req dto.MarkBadDebtRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Load the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Write it off.
	loan, err = loan.MarkBadDebt(now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("mark bad debt: %w", err)
	}

	// 3. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
