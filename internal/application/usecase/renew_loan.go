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

// RenewLoanUseCase signs a replacement loan that absorbs the unpaid balance
// of a borrower's prior loan.
type RenewLoanUseCase struct {
	engine    *service.LedgerEngine
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewRenewLoanUseCase wires dependencies.
func NewRenewLoanUseCase(
	engine *service.LedgerEngine,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *RenewLoanUseCase {
	return &RenewLoanUseCase{
		engine:    engine,
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute loads the prior loan, computes the renewal snapshot with profit
// inheritance, marks the prior loan RENEWED, and persists both.
func (uc *RenewLoanUseCase) Execute(
	ctx context.Context,
	req dto.RenewLoanRequest,
) (dto.LoanResponse, error) {
	signDate := req.SignDate
	if signDate.IsZero() {
		signDate = time.Now().UTC()
	}

	// 1. Load the loan being replaced.
	prior, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.PreviousLoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find prior loan: %w", err)
	}

	terms := service.LoanOriginationInput{
		RequestedAmount: req.RequestedAmount,
		Rate:            req.Rate,
		WeekDuration:    req.WeekDuration,
	}

	// 2. Compute the renewal snapshot against the prior loan's state.
	priorState := prior.PriorState()
	snapshot := uc.engine.CreateLoan(terms, &priorState)

	// 3. Create the replacement aggregate.
	loan, err := model.RenewLoan(prior, terms, snapshot, signDate)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("renew loan: %w", err)
	}

	// 4. Close out the prior loan.
	prior, err = prior.MarkRenewed(signDate)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("mark prior renewed: %w", err)
	}

	// 5. Persist both loans.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.loanRepo.Save(ctx, prior); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save prior loan: %w", err)
	}

	// 6. Publish events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}
