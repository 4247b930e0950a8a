package port

import (
	"context"
	"time"

	"github.com/ruteo/lending/internal/domain/event"
	"github.com/ruteo/lending/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, tenantID, id string) (model.Loan, error)
	FindByBorrowerID(ctx context.Context, tenantID, borrowerID string) ([]model.Loan, error)
}

// PaymentRepository persists and retrieves payment records.
type PaymentRepository interface {
	Save(ctx context.Context, payment model.Payment) error
	ListByLoanID(ctx context.Context, tenantID, loanID string) ([]model.Payment, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Idempotency port
// ---------------------------------------------------------------------------

// IdempotencyStore remembers the outcome of payment recordings keyed by a
// caller-supplied idempotency key, so a retried request returns the first
// result instead of double-posting.
type IdempotencyStore interface {
	// Get returns the stored payload for key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
