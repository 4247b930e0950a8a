package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ruteo/lending/internal/domain/model"
	"github.com/ruteo/lending/internal/domain/valueobject"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists a loan and, on first insert, its weekly schedule. The
// origination snapshot columns never change after insert; only the pending
// balance, status, and write-off marker are updated.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	loanQuery := `
		INSERT INTO loans (
			id, tenant_id, borrower_id, previous_loan_id,
			rate, week_duration, sign_date,
			requested_amount, amount_disbursed, profit_base, inherited_profit,
			profit_amount, return_to_capital, total_debt_acquired, pending_amount,
			expected_weekly_payment, profit_ratio,
			status, bad_debt_at,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		ON CONFLICT (id) DO UPDATE SET
			pending_amount = EXCLUDED.pending_amount,
			status         = EXCLUDED.status,
			bad_debt_at    = EXCLUDED.bad_debt_at,
			version        = loans.version + 1,
			updated_at     = EXCLUDED.updated_at
		WHERE loans.version = $20
	`
	tag, err := tx.Exec(ctx, loanQuery,
		loan.ID(), loan.TenantID(), loan.BorrowerID(), nullIfEmpty(loan.PreviousLoanID()),
		loan.Rate(), loan.WeekDuration(), loan.SignDate(),
		loan.RequestedAmount(), loan.AmountDisbursed(), loan.ProfitBase(), loan.InheritedProfit(),
		loan.ProfitAmount(), loan.ReturnToCapital(), loan.TotalDebtAcquired(), loan.PendingAmount(),
		loan.ExpectedWeeklyPayment(), loan.ProfitRatio(),
		loan.Status().String(), loan.BadDebtAt(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on loan")
	}

	// Save the weekly schedule (only on first insert).
	if loan.Version() == 1 {
		for _, entry := range loan.Schedule() {
			entryQuery := `
				INSERT INTO loan_schedule_entries (loan_id, week, due_date, amount, remaining_balance)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (loan_id, week) DO NOTHING
			`
			_, err := tx.Exec(ctx, entryQuery,
				loan.ID(), entry.Week, entry.DueDate, entry.Amount, entry.RemainingBalance,
			)
			if err != nil {
				return fmt.Errorf("save schedule entry %d: %w", entry.Week, err)
			}
		}
	}

	return tx.Commit(ctx)
}

const loanColumns = `
	id, tenant_id, borrower_id, previous_loan_id,
	rate, week_duration, sign_date,
	requested_amount, amount_disbursed, profit_base, inherited_profit,
	profit_amount, return_to_capital, total_debt_acquired, pending_amount,
	expected_weekly_payment, profit_ratio,
	status, bad_debt_at,
	version, created_at, updated_at
`

// FindByID retrieves a loan and its schedule by ID.
func (r *LoanRepo) FindByID(ctx context.Context, tenantID, id string) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE tenant_id = $1 AND id = $2`

	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return model.Loan{}, err
	}

	return r.withSchedule(ctx, loan)
}

// FindByBorrowerID retrieves all loans for a borrower, newest first.
func (r *LoanRepo) FindByBorrowerID(ctx context.Context, tenantID, borrowerID string) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
		WHERE tenant_id = $1 AND borrower_id = $2
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, tenantID, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loan, err = r.withSchedule(ctx, loan)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, tenantID, borrowerID string
		previousLoanID           *string
		rate                     decimal.Decimal
		weekDuration             int
		signDate                 time.Time

		requestedAmount, amountDisbursed, profitBase, inheritedProfit decimal.Decimal
		profitAmount, returnToCapital, totalDebt, pendingAmount       decimal.Decimal
		weeklyPayment, profitRatio                                    decimal.Decimal

		statusStr            string
		badDebtAt            *time.Time
		version              int
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &tenantID, &borrowerID, &previousLoanID,
		&rate, &weekDuration, &signDate,
		&requestedAmount, &amountDisbursed, &profitBase, &inheritedProfit,
		&profitAmount, &returnToCapital, &totalDebt, &pendingAmount,
		&weeklyPayment, &profitRatio,
		&statusStr, &badDebtAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	var prevID string
	if previousLoanID != nil {
		prevID = *previousLoanID
	}

	return model.ReconstructLoan(
		id, tenantID, borrowerID, prevID,
		rate, weekDuration, signDate,
		requestedAmount, amountDisbursed, profitBase, inheritedProfit,
		profitAmount, returnToCapital, totalDebt, pendingAmount,
		weeklyPayment, profitRatio,
		status, badDebtAt, nil,
		version, createdAt, updatedAt,
	), nil
}

func (r *LoanRepo) withSchedule(ctx context.Context, loan model.Loan) (model.Loan, error) {
	query := `
		SELECT week, due_date, amount, remaining_balance
		FROM loan_schedule_entries
		WHERE loan_id = $1
		ORDER BY week
	`
	rows, err := r.pool.Query(ctx, query, loan.ID())
	if err != nil {
		return model.Loan{}, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var schedule []model.ScheduleEntry
	for rows.Next() {
		var e model.ScheduleEntry
		if err := rows.Scan(&e.Week, &e.DueDate, &e.Amount, &e.RemainingBalance); err != nil {
			return model.Loan{}, fmt.Errorf("scan schedule entry: %w", err)
		}
		schedule = append(schedule, e)
	}
	if err := rows.Err(); err != nil {
		return model.Loan{}, err
	}

	return model.ReconstructLoan(
		loan.ID(), loan.TenantID(), loan.BorrowerID(), loan.PreviousLoanID(),
		loan.Rate(), loan.WeekDuration(), loan.SignDate(),
		loan.RequestedAmount(), loan.AmountDisbursed(), loan.ProfitBase(), loan.InheritedProfit(),
		loan.ProfitAmount(), loan.ReturnToCapital(), loan.TotalDebtAcquired(), loan.PendingAmount(),
		loan.ExpectedWeeklyPayment(), loan.ProfitRatio(),
		loan.Status(), loan.BadDebtAt(), schedule,
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	), nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
