package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteo/lending/internal/domain/event"
	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/internal/domain/service"
	"github.com/ruteo/lending/internal/domain/valueobject"
)

var engine = service.NewLedgerEngine()

func standardTerms() service.LoanOriginationInput {
	return service.LoanOriginationInput{
		RequestedAmount: decimal.NewFromInt(3000),
		Rate:            decimal.NewFromFloat(0.40),
		WeekDuration:    14,
	}
}

func signedLoan(t *testing.T) model.Loan {
	t.Helper()
	terms := standardTerms()
	loan, err := model.NewLoan(
		"tenant-001", "borrower-001",
		terms, engine.CreateLoan(terms, nil),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func TestNewLoan(t *testing.T) {
	t.Run("creates an active loan with schedule and events", func(t *testing.T) {
		terms := standardTerms()
		signDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

		loan, err := model.NewLoan("tenant-001", "borrower-001", terms, engine.CreateLoan(terms, nil), signDate)
		require.NoError(t, err)

		assert.NotEmpty(t, loan.ID())
		assert.Equal(t, valueobject.LoanStatusActive, loan.Status())
		assert.True(t, decimal.NewFromInt(4200).Equal(loan.TotalDebtAcquired()))
		assert.True(t, loan.PendingAmount().Equal(loan.TotalDebtAcquired()))
		assert.True(t, decimal.NewFromInt(3000).Equal(loan.AmountDisbursed()))
		assert.True(t, decimal.Zero.Equal(loan.InheritedProfit()))
		assert.Empty(t, loan.PreviousLoanID())
		assert.Len(t, loan.Schedule(), 14)
		assert.Equal(t, signDate.AddDate(0, 0, 7), loan.Schedule()[0].DueDate)

		require.Len(t, loan.DomainEvents(), 1)
		originated, ok := loan.DomainEvents()[0].(event.LoanOriginated)
		require.True(t, ok)
		assert.Equal(t, loan.ID(), originated.AggregateID())
		assert.Equal(t, 14, originated.WeekDuration)
	})

	t.Run("validates inputs", func(t *testing.T) {
		terms := standardTerms()
		snap := engine.CreateLoan(terms, nil)
		now := time.Now().UTC()

		_, err := model.NewLoan("", "borrower-001", terms, snap, now)
		assert.ErrorContains(t, err, "tenant ID")

		_, err = model.NewLoan("tenant-001", "", terms, snap, now)
		assert.ErrorContains(t, err, "borrower ID")

		bad := terms
		bad.RequestedAmount = decimal.Zero
		_, err = model.NewLoan("tenant-001", "borrower-001", bad, snap, now)
		assert.ErrorContains(t, err, "requested amount")

		bad = terms
		bad.WeekDuration = 0
		_, err = model.NewLoan("tenant-001", "borrower-001", bad, snap, now)
		assert.ErrorContains(t, err, "week duration")
	})
}

func TestRenewLoan(t *testing.T) {
	now := time.Now().UTC()

	t.Run("absorbs prior balance and links the chain", func(t *testing.T) {
		prior := signedLoan(t)

		// Pay 10 weekly installments before renewing.
		for i := 0; i < 10; i++ {
			res := engine.ProcessPayment(prior.PaymentInput(decimal.NewFromInt(300)))
			var err error
			prior, err = prior.ApplyPayment(res, "pay", now)
			require.NoError(t, err)
		}
		require.True(t, decimal.NewFromInt(1200).Equal(prior.PendingAmount()))

		terms := standardTerms()
		priorState := prior.PriorState()
		renewed, err := model.RenewLoan(prior, terms, engine.CreateLoan(terms, &priorState), now)
		require.NoError(t, err)

		assert.Equal(t, prior.ID(), renewed.PreviousLoanID())
		assert.Equal(t, prior.BorrowerID(), renewed.BorrowerID())
		assert.True(t, decimal.NewFromInt(1800).Equal(renewed.AmountDisbursed()))
		assert.True(t, decimal.NewFromFloat(342.86).Equal(renewed.InheritedProfit().Round(2)))
		assert.True(t, decimal.NewFromFloat(4542.86).Equal(renewed.TotalDebtAcquired().Round(2)))

		var renewEvt event.LoanRenewed
		found := false
		for _, e := range renewed.DomainEvents() {
			if re, ok := e.(event.LoanRenewed); ok {
				renewEvt = re
				found = true
			}
		}
		require.True(t, found)
		assert.Equal(t, prior.ID(), renewEvt.PreviousLoanID)
		assert.True(t, decimal.NewFromInt(1200).Equal(renewEvt.AbsorbedBalance))
	})

	t.Run("rejects renewal of a finished loan", func(t *testing.T) {
		loan := signedLoan(t)
		res := engine.ProcessPayment(loan.PaymentInput(decimal.NewFromInt(4200)))
		loan, err := loan.ApplyPayment(res, "pay-final", now)
		require.NoError(t, err)
		require.Equal(t, valueobject.LoanStatusFinished, loan.Status())

		terms := standardTerms()
		priorState := loan.PriorState()
		_, err = model.RenewLoan(loan, terms, engine.CreateLoan(terms, &priorState), now)
		assert.ErrorContains(t, err, "only active loans")
	})
}

func TestLoan_ApplyPayment(t *testing.T) {
	now := time.Now().UTC()

	t.Run("reduces pending and emits PaymentApplied", func(t *testing.T) {
		loan := signedLoan(t)

		res := engine.ProcessPayment(loan.PaymentInput(decimal.NewFromInt(300)))
		loan, err := loan.ApplyPayment(res, "payment-001", now)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(3900).Equal(loan.PendingAmount()))
		assert.Equal(t, valueobject.LoanStatusActive, loan.Status())

		require.Len(t, loan.DomainEvents(), 1)
		applied, ok := loan.DomainEvents()[0].(event.PaymentApplied)
		require.True(t, ok)
		assert.Equal(t, "payment-001", applied.PaymentID)
		assert.False(t, applied.BadDebt)
	})

	t.Run("final payment finishes the loan", func(t *testing.T) {
		loan := signedLoan(t)

		res := engine.ProcessPayment(loan.PaymentInput(decimal.NewFromInt(4200)))
		loan, err := loan.ApplyPayment(res, "payment-final", now)
		require.NoError(t, err)

		assert.Equal(t, valueobject.LoanStatusFinished, loan.Status())
		assert.True(t, decimal.Zero.Equal(loan.PendingAmount()))
		require.Len(t, loan.DomainEvents(), 2)
		_, ok := loan.DomainEvents()[1].(event.LoanFinished)
		assert.True(t, ok)
	})

	t.Run("rejects payments on finished loans", func(t *testing.T) {
		loan := signedLoan(t)
		res := engine.ProcessPayment(loan.PaymentInput(decimal.NewFromInt(4200)))
		loan, err := loan.ApplyPayment(res, "payment-final", now)
		require.NoError(t, err)

		res = engine.ProcessPayment(loan.PaymentInput(decimal.NewFromInt(100)))
		_, err = loan.ApplyPayment(res, "payment-extra", now)
		assert.Error(t, err)
	})

	t.Run("written-off loans still accept payments as profit", func(t *testing.T) {
		loan := signedLoan(t)
		loan, err := loan.MarkBadDebt(now)
		require.NoError(t, err)

		in := loan.PaymentInput(decimal.NewFromInt(300))
		require.True(t, in.IsBadDebt)

		res := engine.ProcessPayment(in)
		assert.True(t, decimal.NewFromInt(300).Equal(res.ProfitAmount))
		assert.True(t, decimal.Zero.Equal(res.ReturnToCapital))

		loan, err = loan.ApplyPayment(res, "payment-recovery", now)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3900).Equal(loan.PendingAmount()))
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		loan := signedLoan(t)
		before := loan.PendingAmount()

		res := engine.ProcessPayment(loan.PaymentInput(decimal.NewFromInt(300)))
		_, err := loan.ApplyPayment(res, "payment-001", now)
		require.NoError(t, err)

		assert.True(t, before.Equal(loan.PendingAmount()))
		assert.Empty(t, loan.DomainEvents())
	})
}

func TestLoan_MarkBadDebt(t *testing.T) {
	now := time.Now().UTC()

	loan := signedLoan(t)
	loan, err := loan.MarkBadDebt(now)
	require.NoError(t, err)

	assert.Equal(t, valueobject.LoanStatusBadDebt, loan.Status())
	require.NotNil(t, loan.BadDebtAt())
	assert.Equal(t, now, *loan.BadDebtAt())
	require.Len(t, loan.DomainEvents(), 1)
	writtenOff, ok := loan.DomainEvents()[0].(event.LoanWrittenOff)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(4200).Equal(writtenOff.PendingAmount))

	// Terminal: cannot be written off twice.
	_, err = loan.MarkBadDebt(now)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoan_MarkRenewed(t *testing.T) {
	now := time.Now().UTC()

	loan := signedLoan(t)
	loan, err := loan.MarkRenewed(now)
	require.NoError(t, err)

	assert.Equal(t, valueobject.LoanStatusRenewed, loan.Status())
	assert.True(t, decimal.Zero.Equal(loan.PendingAmount()))

	_, err = loan.MarkRenewed(now)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}
