package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := NewBaseEvent("lending.loan.originated", "loan-001", "Loan", "tenant-001")
	after := time.Now().UTC()

	require.NotEmpty(t, evt.EventID())
	assert.Equal(t, "lending.loan.originated", evt.EventType())
	assert.Equal(t, "loan-001", evt.AggregateID())
	assert.Equal(t, "Loan", evt.AggregateType())
	assert.Equal(t, "tenant-001", evt.TenantID())
	assert.False(t, evt.OccurredAt().Before(before))
	assert.False(t, evt.OccurredAt().After(after))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("e", "agg", "Loan", "t")
	b := NewBaseEvent("e", "agg", "Loan", "t")
	assert.NotEqual(t, a.EventID(), b.EventID())
}
