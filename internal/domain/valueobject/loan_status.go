package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan. FINISHED, BAD_DEBT
// and RENEWED are terminal: a renewal never mutates the old loan back to
// life, it creates a new loan referencing it.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive   = "ACTIVE"
	loanStatusFinished = "FINISHED"
	loanStatusBadDebt  = "BAD_DEBT"
	loanStatusRenewed  = "RENEWED"
)

var (
	LoanStatusActive   = LoanStatus{value: loanStatusActive}
	LoanStatusFinished = LoanStatus{value: loanStatusFinished}
	LoanStatusBadDebt  = LoanStatus{value: loanStatusBadDebt}
	LoanStatusRenewed  = LoanStatus{value: loanStatusRenewed}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:   LoanStatusActive,
	loanStatusFinished: LoanStatusFinished,
	loanStatusBadDebt:  LoanStatusBadDebt,
	loanStatusRenewed:  LoanStatusRenewed,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsTerminal returns true for statuses no transition can leave.
func (s LoanStatus) IsTerminal() bool {
	return s.value == loanStatusFinished || s.value == loanStatusBadDebt || s.value == loanStatusRenewed
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
