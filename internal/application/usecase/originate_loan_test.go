package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteo/lending/internal/application/dto"
	"github.com/ruteo/lending/internal/application/usecase"
	"github.com/ruteo/lending/internal/domain/event"
	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/internal/domain/service"
	"github.com/ruteo/lending/pkg/testutil"
)

func TestOriginateLoan_Execute(t *testing.T) {
	engine := service.NewLedgerEngine()

	t.Run("successfully originates a loan", func(t *testing.T) {
		loanRepo := &mockLoanRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewOriginateLoanUseCase(engine, loanRepo, publisher)

		req := dto.OriginateLoanRequest{
			TenantID:        testutil.TestTenantID,
			BorrowerID:      testutil.TestBorrowerID,
			RequestedAmount: testutil.TestRequestedAmount,
			Rate:            testutil.TestRate,
			WeekDuration:    testutil.TestWeekDuration,
			SignDate:        time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		}
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, testutil.TestTenantID, resp.TenantID)
		assert.Equal(t, testutil.TestBorrowerID, resp.BorrowerID)
		assert.Empty(t, resp.PreviousLoanID)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(3000), resp.AmountDisbursed)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1200), resp.ProfitAmount)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(4200), resp.TotalDebtAcquired)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(4200), resp.PendingAmount)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(300), resp.ExpectedWeeklyPayment)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Len(t, resp.Schedule, 14)

		require.Len(t, loanRepo.savedLoans, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("fails on non-positive requested amount", func(t *testing.T) {
		uc := usecase.NewOriginateLoanUseCase(engine, &mockLoanRepository{}, &mockEventPublisher{})

		req := dto.OriginateLoanRequest{
			TenantID:        testutil.TestTenantID,
			BorrowerID:      testutil.TestBorrowerID,
			RequestedAmount: decimal.Zero,
			Rate:            testutil.TestRate,
			WeekDuration:    testutil.TestWeekDuration,
		}
		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create loan")
	})

	t.Run("fails when loan save fails", func(t *testing.T) {
		loanRepo := &mockLoanRepository{
			saveFunc: func(ctx context.Context, _ model.Loan) error {
				return fmt.Errorf("database unavailable")
			},
		}

		uc := usecase.NewOriginateLoanUseCase(engine, loanRepo, &mockEventPublisher{})

		req := dto.OriginateLoanRequest{
			TenantID:        testutil.TestTenantID,
			BorrowerID:      testutil.TestBorrowerID,
			RequestedAmount: testutil.TestRequestedAmount,
			Rate:            testutil.TestRate,
			WeekDuration:    testutil.TestWeekDuration,
		}
		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save loan")
	})

	t.Run("fails when event publish fails", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, _ ...event.DomainEvent) error {
				return fmt.Errorf("broker unreachable")
			},
		}

		uc := usecase.NewOriginateLoanUseCase(engine, &mockLoanRepository{}, publisher)

		req := dto.OriginateLoanRequest{
			TenantID:        testutil.TestTenantID,
			BorrowerID:      testutil.TestBorrowerID,
			RequestedAmount: testutil.TestRequestedAmount,
			Rate:            testutil.TestRate,
			WeekDuration:    testutil.TestWeekDuration,
		}
		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})
}
