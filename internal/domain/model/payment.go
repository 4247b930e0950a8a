package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ruteo/lending/internal/domain/service"
)

// Payment is an immutable record of one payment split against a loan. The
// split itself is computed by the ledger engine; this record only carries
// identity and the before/after balances the caller persists.
type Payment struct {
	id              string
	tenantID        string
	loanID          string
	amount          decimal.Decimal
	profitAmount    decimal.Decimal
	returnToCapital decimal.Decimal
	pendingBefore   decimal.Decimal
	pendingAfter    decimal.Decimal
	badDebt         bool
	receivedAt      time.Time
	createdAt       time.Time
}

// NewPayment creates a payment record from an engine split.
func NewPayment(
	tenantID, loanID string,
	pendingBefore decimal.Decimal,
	res service.PaymentResult,
	badDebt bool,
	receivedAt time.Time,
) (Payment, error) {
	if tenantID == "" {
		return Payment{}, errors.New("tenant ID is required")
	}
	if loanID == "" {
		return Payment{}, errors.New("loan ID is required")
	}

	return Payment{
		id:              uuid.New().String(),
		tenantID:        tenantID,
		loanID:          loanID,
		amount:          res.Amount,
		profitAmount:    res.ProfitAmount,
		returnToCapital: res.ReturnToCapital,
		pendingBefore:   pendingBefore,
		pendingAfter:    res.NewPendingAmount,
		badDebt:         badDebt,
		receivedAt:      receivedAt,
		createdAt:       receivedAt,
	}, nil
}

// ReconstructPayment rebuilds a Payment record from persistence.
func ReconstructPayment(
	id, tenantID, loanID string,
	amount, profitAmount, returnToCapital, pendingBefore, pendingAfter decimal.Decimal,
	badDebt bool,
	receivedAt, createdAt time.Time,
) Payment {
	return Payment{
		id:              id,
		tenantID:        tenantID,
		loanID:          loanID,
		amount:          amount,
		profitAmount:    profitAmount,
		returnToCapital: returnToCapital,
		pendingBefore:   pendingBefore,
		pendingAfter:    pendingAfter,
		badDebt:         badDebt,
		receivedAt:      receivedAt,
		createdAt:       createdAt,
	}
}

func (p Payment) ID() string                       { return p.id }
func (p Payment) TenantID() string                 { return p.tenantID }
func (p Payment) LoanID() string                   { return p.loanID }
func (p Payment) Amount() decimal.Decimal          { return p.amount }
func (p Payment) ProfitAmount() decimal.Decimal    { return p.profitAmount }
func (p Payment) ReturnToCapital() decimal.Decimal { return p.returnToCapital }
func (p Payment) PendingBefore() decimal.Decimal   { return p.pendingBefore }
func (p Payment) PendingAfter() decimal.Decimal    { return p.pendingAfter }
func (p Payment) BadDebt() bool                    { return p.badDebt }
func (p Payment) ReceivedAt() time.Time            { return p.receivedAt }
func (p Payment) CreatedAt() time.Time             { return p.createdAt }
