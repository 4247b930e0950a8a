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
	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/pkg/testutil"
)

func TestListLoanPayments_Execute(t *testing.T) {
	now := time.Now().UTC()

	payment := func(id string, amount, profit, before, after decimal.Decimal, badDebt bool) model.Payment {
		return model.ReconstructPayment(
			id, testutil.TestTenantID, testutil.TestLoanID,
			amount, profit, amount.Sub(profit), before, after,
			badDebt, now, now,
		)
	}

	t.Run("maps payment records with derived statuses", func(t *testing.T) {
		paymentRepo := &mockPaymentRepository{
			listFunc: func(ctx context.Context, tenantID, loanID string) ([]model.Payment, error) {
				return []model.Payment{
					payment("p-1", decimal.NewFromInt(300), decimal.NewFromFloat(85.71),
						decimal.NewFromInt(4200), decimal.NewFromInt(3900), false),
					payment("p-2", decimal.NewFromInt(300), decimal.NewFromInt(300),
						decimal.NewFromInt(600), decimal.NewFromInt(300), true),
					payment("p-3", decimal.NewFromInt(300), decimal.NewFromInt(300),
						decimal.NewFromInt(300), decimal.Zero, true),
				}, nil
			},
		}

		uc := usecase.NewListLoanPaymentsUseCase(paymentRepo)

		resp, err := uc.Execute(context.Background(), dto.ListPaymentsRequest{
			TenantID: testutil.TestTenantID,
			LoanID:   testutil.TestLoanID,
		})

		require.NoError(t, err)
		require.Len(t, resp, 3)

		assert.Equal(t, "p-1", resp[0].ID)
		assert.Equal(t, "ACTIVE", resp[0].LoanStatus)
		testutil.AssertDecimalEqual(t, decimal.NewFromFloat(214.29), resp[0].ReturnToCapital)

		assert.True(t, resp[1].BadDebt)
		assert.Equal(t, "BAD_DEBT", resp[1].LoanStatus)

		// A settled balance wins over the write-off marker.
		assert.Equal(t, "FINISHED", resp[2].LoanStatus)
	})

	t.Run("returns empty list for a loan without payments", func(t *testing.T) {
		uc := usecase.NewListLoanPaymentsUseCase(&mockPaymentRepository{})

		resp, err := uc.Execute(context.Background(), dto.ListPaymentsRequest{
			TenantID: testutil.TestTenantID,
			LoanID:   testutil.TestLoanID,
		})

		require.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("fails when the repository fails", func(t *testing.T) {
		paymentRepo := &mockPaymentRepository{
			listFunc: func(ctx context.Context, tenantID, loanID string) ([]model.Payment, error) {
				return nil, fmt.Errorf("database unavailable")
			},
		}

		uc := usecase.NewListLoanPaymentsUseCase(paymentRepo)

		_, err := uc.Execute(context.Background(), dto.ListPaymentsRequest{
			TenantID: testutil.TestTenantID,
			LoanID:   testutil.TestLoanID,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list payments")
	})
}
