package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ruteo/lending/internal/domain/event"
	"github.com/ruteo/lending/internal/domain/service"
	"github.com/ruteo/lending/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
//
// The financial snapshot fields (requested amount through profit ratio) are
// computed once by the ledger engine at signing time; only pendingAmount and
// status change over the loan's life.
type Loan struct {
	id             string
	tenantID       string
	borrowerID     string
	previousLoanID string

	rate         decimal.Decimal
	weekDuration int
	signDate     time.Time

	requestedAmount       decimal.Decimal
	amountDisbursed       decimal.Decimal
	profitBase            decimal.Decimal
	inheritedProfit       decimal.Decimal
	profitAmount          decimal.Decimal
	returnToCapital       decimal.Decimal
	totalDebtAcquired     decimal.Decimal
	pendingAmount         decimal.Decimal
	expectedWeeklyPayment decimal.Decimal
	profitRatio           decimal.Decimal

	status    valueobject.LoanStatus
	badDebtAt *time.Time
	schedule  []ScheduleEntry

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates a brand-new loan from origination terms and the snapshot
// computed by the ledger engine. The loan starts ACTIVE with its weekly
// payment schedule generated.
func NewLoan(
	tenantID, borrowerID string,
	terms service.LoanOriginationInput,
	snapshot service.LoanOriginationResult,
	signDate time.Time,
) (Loan, error) {
	if tenantID == "" {
		return Loan{}, errors.New("tenant ID is required")
	}
	if borrowerID == "" {
		return Loan{}, errors.New("borrower ID is required")
	}
	if terms.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("requested amount must be positive")
	}
	if terms.Rate.IsNegative() {
		return Loan{}, errors.New("rate must not be negative")
	}
	if terms.WeekDuration <= 0 {
		return Loan{}, errors.New("week duration must be positive")
	}

	loan := newFromSnapshot(tenantID, borrowerID, "", terms, snapshot, signDate)

	loan.domainEvents = append(loan.domainEvents, event.NewLoanOriginated(
		loan.id, tenantID, borrowerID,
		snapshot.RequestedAmount, snapshot.AmountDisbursed,
		snapshot.ProfitAmount, snapshot.TotalDebtAcquired,
		snapshot.ExpectedWeeklyPayment, terms.WeekDuration,
	))

	return loan, nil
}

// RenewLoan creates a new loan that absorbs the unpaid balance of a prior
// loan for the same borrower. The prior loan must still be ACTIVE; callers
// mark it RENEWED separately once the new loan is persisted.
func RenewLoan(
	prior Loan,
	terms service.LoanOriginationInput,
	snapshot service.LoanOriginationResult,
	signDate time.Time,
) (Loan, error) {
	if !prior.status.Equal(valueobject.LoanStatusActive) {
		return Loan{}, errors.New("only active loans can be renewed")
	}
	if terms.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("requested amount must be positive")
	}
	if terms.WeekDuration <= 0 {
		return Loan{}, errors.New("week duration must be positive")
	}

	loan := newFromSnapshot(prior.tenantID, prior.borrowerID, prior.id, terms, snapshot, signDate)

	loan.domainEvents = append(loan.domainEvents, event.NewLoanRenewed(
		loan.id, prior.tenantID, prior.id, prior.borrowerID,
		prior.pendingAmount, snapshot.InheritedProfit,
		snapshot.AmountDisbursed, snapshot.TotalDebtAcquired,
	))

	return loan, nil
}

func newFromSnapshot(
	tenantID, borrowerID, previousLoanID string,
	terms service.LoanOriginationInput,
	snapshot service.LoanOriginationResult,
	signDate time.Time,
) Loan {
	return Loan{
		id:                    uuid.New().String(),
		tenantID:              tenantID,
		borrowerID:            borrowerID,
		previousLoanID:        previousLoanID,
		rate:                  terms.Rate,
		weekDuration:          terms.WeekDuration,
		signDate:              signDate,
		requestedAmount:       snapshot.RequestedAmount,
		amountDisbursed:       snapshot.AmountDisbursed,
		profitBase:            snapshot.ProfitBase,
		inheritedProfit:       snapshot.InheritedProfit,
		profitAmount:          snapshot.ProfitAmount,
		returnToCapital:       snapshot.ReturnToCapital,
		totalDebtAcquired:     snapshot.TotalDebtAcquired,
		pendingAmount:         snapshot.PendingAmount,
		expectedWeeklyPayment: snapshot.ExpectedWeeklyPayment,
		profitRatio:           snapshot.ProfitRatio,
		status:                valueobject.LoanStatusActive,
		schedule:              GenerateWeeklySchedule(snapshot.TotalDebtAcquired, terms.WeekDuration, signDate),
		version:               1,
		createdAt:             signDate,
		updatedAt:             signDate,
	}
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, tenantID, borrowerID, previousLoanID string,
	rate decimal.Decimal,
	weekDuration int,
	signDate time.Time,
	requestedAmount, amountDisbursed, profitBase, inheritedProfit,
	profitAmount, returnToCapital, totalDebtAcquired, pendingAmount,
	expectedWeeklyPayment, profitRatio decimal.Decimal,
	status valueobject.LoanStatus,
	badDebtAt *time.Time,
	schedule []ScheduleEntry,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                    id,
		tenantID:              tenantID,
		borrowerID:            borrowerID,
		previousLoanID:        previousLoanID,
		rate:                  rate,
		weekDuration:          weekDuration,
		signDate:              signDate,
		requestedAmount:       requestedAmount,
		amountDisbursed:       amountDisbursed,
		profitBase:            profitBase,
		inheritedProfit:       inheritedProfit,
		profitAmount:          profitAmount,
		returnToCapital:       returnToCapital,
		totalDebtAcquired:     totalDebtAcquired,
		pendingAmount:         pendingAmount,
		expectedWeeklyPayment: expectedWeeklyPayment,
		profitRatio:           profitRatio,
		status:                status,
		badDebtAt:             badDebtAt,
		schedule:              schedule,
		version:               version,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// PriorState packages this loan's snapshot as engine input for a renewal.
func (l Loan) PriorState() service.PriorLoanState {
	return service.PriorLoanState{
		PendingAmount:     l.pendingAmount,
		ProfitAmount:      l.profitAmount,
		TotalDebtAcquired: l.totalDebtAcquired,
	}
}

// PaymentInput packages this loan's snapshot as engine input for a payment.
func (l Loan) PaymentInput(amount decimal.Decimal) service.PaymentInput {
	return service.PaymentInput{
		Amount:            amount,
		LoanProfitAmount:  l.profitAmount,
		LoanTotalDebt:     l.totalDebtAcquired,
		LoanPendingAmount: l.pendingAmount,
		IsBadDebt:         l.badDebtAt != nil,
	}
}

// ApplyPayment records a payment split computed by the ledger engine,
// reducing the pending balance and emitting PaymentApplied. Written-off
// loans still accept payments; their recoveries are already split as pure
// profit by the engine.
func (l Loan) ApplyPayment(res service.PaymentResult, paymentID string, now time.Time) (Loan, error) {
	if l.status.Equal(valueobject.LoanStatusFinished) || l.status.Equal(valueobject.LoanStatusRenewed) {
		return l, errors.New("payments can only be applied to active or written-off loans")
	}

	next := l
	next.pendingAmount = res.NewPendingAmount
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentApplied(
		l.id, l.tenantID, paymentID,
		res.Amount, res.ProfitAmount, res.ReturnToCapital, res.NewPendingAmount,
		l.badDebtAt != nil,
	))

	if res.FullyPaid {
		next.status = valueobject.LoanStatusFinished
		next.domainEvents = append(next.domainEvents, event.NewLoanFinished(l.id, l.tenantID))
	}

	return next, nil
}

// MarkBadDebt transitions ACTIVE -> BAD_DEBT and records the write-off date.
func (l Loan) MarkBadDebt(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusBadDebt
	next.badDebtAt = &now
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanWrittenOff(l.id, l.tenantID, l.pendingAmount))
	return next, nil
}

// MarkRenewed transitions ACTIVE -> RENEWED once a renewal has absorbed
// this loan's balance.
func (l Loan) MarkRenewed(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusRenewed
	next.pendingAmount = decimal.Zero
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                { return l.id }
func (l Loan) TenantID() string          { return l.tenantID }
func (l Loan) BorrowerID() string        { return l.borrowerID }
func (l Loan) PreviousLoanID() string    { return l.previousLoanID }
func (l Loan) Rate() decimal.Decimal     { return l.rate }
func (l Loan) WeekDuration() int         { return l.weekDuration }
func (l Loan) SignDate() time.Time       { return l.signDate }
func (l Loan) Version() int              { return l.version }
func (l Loan) CreatedAt() time.Time      { return l.createdAt }
func (l Loan) UpdatedAt() time.Time      { return l.updatedAt }
func (l Loan) BadDebtAt() *time.Time     { return l.badDebtAt }

func (l Loan) RequestedAmount() decimal.Decimal       { return l.requestedAmount }
func (l Loan) AmountDisbursed() decimal.Decimal       { return l.amountDisbursed }
func (l Loan) ProfitBase() decimal.Decimal            { return l.profitBase }
func (l Loan) InheritedProfit() decimal.Decimal       { return l.inheritedProfit }
func (l Loan) ProfitAmount() decimal.Decimal          { return l.profitAmount }
func (l Loan) ReturnToCapital() decimal.Decimal       { return l.returnToCapital }
func (l Loan) TotalDebtAcquired() decimal.Decimal     { return l.totalDebtAcquired }
func (l Loan) PendingAmount() decimal.Decimal         { return l.pendingAmount }
func (l Loan) ExpectedWeeklyPayment() decimal.Decimal { return l.expectedWeeklyPayment }
func (l Loan) ProfitRatio() decimal.Decimal           { return l.profitRatio }

func (l Loan) Status() valueobject.LoanStatus    { return l.status }
func (l Loan) DomainEvents() []event.DomainEvent { return l.domainEvents }

// Schedule returns a defensive copy of the weekly payment schedule.
func (l Loan) Schedule() []ScheduleEntry {
	if l.schedule == nil {
		return nil
	}
	out := make([]ScheduleEntry, len(l.schedule))
	copy(out, l.schedule)
	return out
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(in []event.DomainEvent) []event.DomainEvent {
	if in == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(in))
	copy(out, in)
	return out
}
