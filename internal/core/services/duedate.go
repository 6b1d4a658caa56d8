package services

import (
	"time"

	"github.com/tvhoang/wallet_ledger_app/internal/core/domain"
)

// Alert window bounds, in days before the due date.
const (
	alertRedDays    = 3
	alertOrangeDays = 7
	alertYellowDays = 10
)

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOnDay returns midnight UTC of the given day in the given month,
// clamping the day when the month is shorter. Day 31 in February yields
// the 28th or 29th.
func dateOnDay(year int, month time.Month, day int) time.Time {
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NextOccurrence returns the first date on or after from whose day of
// month is day. A payment due today is still due today, not next month.
// Months too short for day use their last day instead.
func NextOccurrence(from time.Time, day int) time.Time {
	from = from.UTC()
	candidate := dateOnDay(from.Year(), from.Month(), day)
	if !candidate.Before(truncateToDay(from)) {
		return candidate
	}
	next := from.AddDate(0, 1, -from.Day()+1) // first of next month
	return dateOnDay(next.Year(), next.Month(), day)
}

// monthsAfter returns the due date months whole months after anchor, on the
// anchor's recurring day, clamped for short months.
func monthsAfter(anchor time.Time, months int, day int) time.Time {
	anchor = anchor.UTC()
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	target := first.AddDate(0, months, 0)
	return dateOnDay(target.Year(), target.Month(), day)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysRemaining returns the number of whole calendar days from asOf until
// due. The result is negative when due is in the past.
func DaysRemaining(asOf time.Time, due time.Time) int {
	return int(truncateToDay(due).Sub(truncateToDay(asOf)).Hours() / 24)
}

// AlertLevelFor maps days remaining to an alert band. Overdue payments are
// always RED; anything beyond ten days out is outside the surfaced window.
func AlertLevelFor(daysRemaining int) domain.AlertLevel {
	switch {
	case daysRemaining <= alertRedDays:
		return domain.AlertRed
	case daysRemaining <= alertOrangeDays:
		return domain.AlertOrange
	case daysRemaining <= alertYellowDays:
		return domain.AlertYellow
	default:
		return domain.AlertNone
	}
}
