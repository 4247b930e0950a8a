package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruteo/lending/internal/domain/valueobject"
)

func TestNewLoanStatus(t *testing.T) {
	for _, raw := range []string{"ACTIVE", "FINISHED", "BAD_DEBT", "RENEWED"} {
		status, err := valueobject.NewLoanStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, status.String())
		assert.False(t, status.IsZero())
	}

	_, err := valueobject.NewLoanStatus("PAID_OFF")
	assert.ErrorContains(t, err, "invalid loan status")

	_, err = valueobject.NewLoanStatus("")
	assert.Error(t, err)
}

func TestLoanStatus_IsTerminal(t *testing.T) {
	assert.False(t, valueobject.LoanStatusActive.IsTerminal())
	assert.True(t, valueobject.LoanStatusFinished.IsTerminal())
	assert.True(t, valueobject.LoanStatusBadDebt.IsTerminal())
	assert.True(t, valueobject.LoanStatusRenewed.IsTerminal())
}

func TestLoanStatus_Equal(t *testing.T) {
	a, err := valueobject.NewLoanStatus("ACTIVE")
	require.NoError(t, err)
	assert.True(t, a.Equal(valueobject.LoanStatusActive))
	assert.False(t, a.Equal(valueobject.LoanStatusFinished))
}
