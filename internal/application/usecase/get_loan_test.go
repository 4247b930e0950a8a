package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteo/lending/internal/application/dto"
	"github.com/ruteo/lending/internal/application/usecase"
	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/internal/domain/valueobject"
	"github.com/ruteo/lending/pkg/testutil"
)

func TestGetLoan_Execute(t *testing.T) {
	t.Run("returns the loan with its schedule", func(t *testing.T) {
		loan := reconstructedLoan(decimal.NewFromInt(4200), valueobject.LoanStatusActive, nil)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.Loan, error) {
				return loan, nil
			},
		}

		uc := usecase.NewGetLoanUseCase(loanRepo)

		resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{
			TenantID: testutil.TestTenantID,
			LoanID:   testutil.TestLoanID,
		})

		require.NoError(t, err)
		assert.Equal(t, testutil.TestLoanID, resp.ID)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Len(t, resp.Schedule, 14)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(300), resp.Schedule[0].Amount)
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		uc := usecase.NewGetLoanUseCase(&mockLoanRepository{})

		_, err := uc.Execute(context.Background(), dto.GetLoanRequest{
			TenantID: testutil.TestTenantID,
			LoanID:   "missing",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "find loan")
	})
}
