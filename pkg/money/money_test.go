package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	c, err := NewCurrency("MXN")
	require.NoError(t, err)
	assert.Equal(t, "MXN", c.Code())

	for _, bad := range []string{"", "mx", "MXNN", "mxn", "12A"} {
		_, err := NewCurrency(bad)
		assert.Error(t, err, "code %q", bad)
	}
}

func TestNewFromString(t *testing.T) {
	m, err := NewFromString("300.50", "MXN")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(300.50)))
	assert.Equal(t, MXN, m.Currency())

	_, err = NewFromString("not-a-number", "MXN")
	assert.Error(t, err)

	_, err = NewFromString("100", "pesos")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := New(decimal.NewFromInt(300), MXN)
	b := New(decimal.NewFromInt(85), MXN)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(385)))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(215)))

	_, err = a.Add(New(decimal.NewFromInt(1), USD))
	assert.ErrorContains(t, err, "currency mismatch")

	_, err = a.Subtract(New(decimal.NewFromInt(1), USD))
	assert.ErrorContains(t, err, "currency mismatch")
}

func TestMoney_RoundCents(t *testing.T) {
	m := New(decimal.RequireFromString("85.714285714"), MXN)
	assert.Equal(t, "85.71 MXN", m.RoundCents().String())

	m = New(decimal.RequireFromString("214.285714286"), MXN)
	assert.Equal(t, "214.29 MXN", m.RoundCents().String())
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, Zero(MXN).IsZero())
	assert.True(t, New(decimal.NewFromInt(1), MXN).IsPositive())
	assert.True(t, New(decimal.NewFromInt(-1), MXN).IsNegative())
	assert.True(t, New(decimal.NewFromInt(5), MXN).Equal(New(decimal.NewFromInt(5), MXN)))
	assert.False(t, New(decimal.NewFromInt(5), MXN).Equal(New(decimal.NewFromInt(5), USD)))
}
