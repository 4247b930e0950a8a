package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ruteo/lending/internal/domain/event"
	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/internal/domain/valueobject"
	"github.com/ruteo/lending/pkg/testutil"
)

// reconstructedLoan builds the standard 3000 @ 40% / 14 week loan with the
// given pending balance, as it would come back from the repository.
func reconstructedLoan(pending decimal.Decimal, status valueobject.LoanStatus, badDebtAt *time.Time) model.Loan {
	now := time.Now().UTC()
	totalDebt := decimal.NewFromInt(4200)
	profit := decimal.NewFromInt(1200)

	return model.ReconstructLoan(
		testutil.TestLoanID, testutil.TestTenantID, testutil.TestBorrowerID, "",
		testutil.TestRate, testutil.TestWeekDuration, now,
		testutil.TestRequestedAmount,     // requested
		testutil.TestRequestedAmount,     // disbursed
		profit,                           // profit base
		decimal.Zero,                     // inherited profit
		profit,                           // profit amount
		testutil.TestRequestedAmount,     // return to capital
		totalDebt, pending,
		decimal.NewFromInt(300),          // weekly payment
		profit.Div(totalDebt),            // profit ratio
		status, badDebtAt,
		model.GenerateWeeklySchedule(totalDebt, testutil.TestWeekDuration, now),
		1, now, now,
	)
}

type mockLoanRepository struct {
	saveFunc     func(ctx context.Context, loan model.Loan) error
	findByIDFunc func(ctx context.Context, tenantID, id string) (model.Loan, error)
	savedLoans   []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, tenantID, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.Loan{}, fmt.Errorf("loan not found")
}

func (m *mockLoanRepository) FindByBorrowerID(_ context.Context, _, _ string) ([]model.Loan, error) {
	return nil, nil
}

type mockPaymentRepository struct {
	saveFunc      func(ctx context.Context, payment model.Payment) error
	listFunc      func(ctx context.Context, tenantID, loanID string) ([]model.Payment, error)
	savedPayments []model.Payment
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment model.Payment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, payment)
	}
	m.savedPayments = append(m.savedPayments, payment)
	return nil
}

func (m *mockPaymentRepository) ListByLoanID(ctx context.Context, tenantID, loanID string) ([]model.Payment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, tenantID, loanID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockIdempotencyStore struct {
	getFunc  func(ctx context.Context, key string) ([]byte, error)
	saveFunc func(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	entries  map[string][]byte
}

func (m *mockIdempotencyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return m.entries[key], nil
}

func (m *mockIdempotencyStore) Save(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, key, payload, ttl)
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = payload
	return nil
}
