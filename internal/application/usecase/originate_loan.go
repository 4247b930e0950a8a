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

// OriginateLoanUseCase signs a brand-new loan for a borrower.
type OriginateLoanUseCase struct {
	engine    *service.LedgerEngine
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewOriginateLoanUseCase wires dependencies.
func NewOriginateLoanUseCase(
	engine *service.LedgerEngine,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *OriginateLoanUseCase {
	return &OriginateLoanUseCase{
		engine:    engine,
		loanRepo:  loanRepo,
		publisher: publisher,
	}
}

// Execute computes the origination snapshot, persists the new loan, and
// publishes its events.
func (uc *OriginateLoanUseCase) Execute(
	ctx context.Context,
	req dto.OriginateLoanRequest,
) (dto.LoanResponse, error) {
	signDate := req.SignDate
	if signDate.IsZero() {
		signDate = time.Now().UTC()
	}

	terms := service.LoanOriginationInput{
		RequestedAmount: req.RequestedAmount,
		Rate:            req.Rate,
		WeekDuration:    req.WeekDuration,
	}

	// 1. Compute the financial snapshot.
	snapshot := uc.engine.CreateLoan(terms, nil)

	// 2. Create the loan aggregate.
	loan, err := model.NewLoan(req.TenantID, req.BorrowerID, terms, snapshot, signDate)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
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

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	sched := loan.Schedule()
	entries := make([]dto.ScheduleEntryResponse, len(sched))
	for i, e := range sched {
		entries[i] = dto.ScheduleEntryResponse{
			Week:             e.Week,
			DueDate:          e.DueDate,
			Amount:           e.Amount,
			RemainingBalance: e.RemainingBalance,
		}
	}

	return dto.LoanResponse{
		ID:                    loan.ID(),
		TenantID:              loan.TenantID(),
		BorrowerID:            loan.BorrowerID(),
		PreviousLoanID:        loan.PreviousLoanID(),
		Rate:                  loan.Rate(),
		WeekDuration:          loan.WeekDuration(),
		SignDate:              loan.SignDate(),
		RequestedAmount:       loan.RequestedAmount(),
		AmountDisbursed:       loan.AmountDisbursed(),
		ProfitBase:            loan.ProfitBase(),
		InheritedProfit:       loan.InheritedProfit(),
		ProfitAmount:          loan.ProfitAmount(),
		ReturnToCapital:       loan.ReturnToCapital(),
		TotalDebtAcquired:     loan.TotalDebtAcquired(),
		PendingAmount:         loan.PendingAmount(),
		ExpectedWeeklyPayment: loan.ExpectedWeeklyPayment(),
		ProfitRatio:           loan.ProfitRatio(),
		Status:                loan.Status().String(),
		BadDebtAt:             loan.BadDebtAt(),
		Schedule:              entries,
		CreatedAt:             loan.CreatedAt(),
		UpdatedAt:             loan.UpdatedAt(),
	}
}
