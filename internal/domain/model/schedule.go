package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is an immutable value object representing one weekly
// installment in a loan's payment book.
type ScheduleEntry struct {
	DueDate          time.Time
	Amount           decimal.Decimal
	RemainingBalance decimal.Decimal
	Week             int
}

// GenerateWeeklySchedule computes the flat weekly payment book for a loan:
// totalDebt split evenly across weekDuration installments, first one due a
// week after the sign date.
//
// Installments are rounded to whole cents; the final week absorbs the
// rounding difference so the scheduled balance reaches exactly zero.
func GenerateWeeklySchedule(
	totalDebt decimal.Decimal,
	weekDuration int,
	signDate time.Time,
) []ScheduleEntry {
	if weekDuration <= 0 || totalDebt.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	weekly := totalDebt.Div(decimal.NewFromInt(int64(weekDuration))).Round(2)

	schedule := make([]ScheduleEntry, 0, weekDuration)
	remaining := totalDebt

	for week := 1; week <= weekDuration; week++ {
		amount := weekly
		if week == weekDuration {
			amount = remaining
		}

		remaining = remaining.Sub(amount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		schedule = append(schedule, ScheduleEntry{
			Week:             week,
			DueDate:          signDate.AddDate(0, 0, 7*week),
			Amount:           amount,
			RemainingBalance: remaining,
		})
	}

	return schedule
}
