package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ruteo/lending/internal/domain/model"
)

// PaymentRepo implements port.PaymentRepository.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new PostgreSQL-backed payment repository.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Save persists one payment record. Payments are append-only.
func (r *PaymentRepo) Save(ctx context.Context, payment model.Payment) error {
	query := `
		INSERT INTO loan_payments (
			id, tenant_id, loan_id,
			amount, profit_amount, return_to_capital,
			pending_before, pending_after, bad_debt,
			received_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err := r.pool.Exec(ctx, query,
		payment.ID(), payment.TenantID(), payment.LoanID(),
		payment.Amount(), payment.ProfitAmount(), payment.ReturnToCapital(),
		payment.PendingBefore(), payment.PendingAfter(), payment.BadDebt(),
		payment.ReceivedAt(), payment.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

// ListByLoanID retrieves a loan's payments, oldest first.
func (r *PaymentRepo) ListByLoanID(ctx context.Context, tenantID, loanID string) ([]model.Payment, error) {
	query := `
		SELECT id, tenant_id, loan_id,
		       amount, profit_amount, return_to_capital,
		       pending_before, pending_after, bad_debt,
		       received_at, created_at
		FROM loan_payments
		WHERE tenant_id = $1 AND loan_id = $2
		ORDER BY received_at, created_at
	`
	rows, err := r.pool.Query(ctx, query, tenantID, loanID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var (
			id, tenant, loan                       string
			amount, profit, capital, before, after decimal.Decimal
			badDebt                                bool
			receivedAt, createdAt                  time.Time
		)
		err := rows.Scan(
			&id, &tenant, &loan,
			&amount, &profit, &capital,
			&before, &after, &badDebt,
			&receivedAt, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}

		payments = append(payments, model.ReconstructPayment(
			id, tenant, loan,
			amount, profit, capital, before, after,
			badDebt, receivedAt, createdAt,
		))
	}
	return payments, rows.Err()
}
