package estimate

import (
	"cloud.google.com/go/civil"
	"github.com/gantty/gantty/pkg/milestone"
)

const (
	// maxOccurrences bounds recurrence expansion against misconfigured
	// intervals. Skipped occurrences consume the budget too.
	maxOccurrences = 100
	// continuousHorizonDays is how far a continuous project's recurrence
	// expands past the project start.
	continuousHorizonDays = 365
)

// Occurrences expands a recurring milestone template into concrete
// occurrence dates. Expansion starts at the template's due date, advances by
// the configured pattern, drops occurrences before the project start, and
// stops at the project end (or one year past the start for continuous
// projects) or after the occurrence budget runs out. Unrecognized recurrence
// types expand to nothing.
func Occurrences(cfg milestone.RecurringConfig, dueDate, projectStart, projectEnd civil.Date, continuous bool) []civil.Date {
	switch cfg.Type {
	case milestone.RecurrenceDaily, milestone.RecurrenceWeekly, milestone.RecurrenceMonthly:
	default:
		return nil
	}

	endLimit := projectEnd
	if continuous {
		endLimit = projectStart.AddDays(continuousHorizonDays)
	}

	occurrences := make([]civil.Date, 0, 8)
	current := dueDate
	for step := 0; step < maxOccurrences; step++ {
		if current.After(endLimit) {
			break
		}
		if !current.Before(projectStart) {
			occurrences = append(occurrences, current)
		}
		current = nextOccurrence(cfg, dueDate, current, step)
	}
	return occurrences
}

func nextOccurrence(cfg milestone.RecurringConfig, dueDate, current civil.Date, step int) civil.Date {
	switch cfg.Type {
	case milestone.RecurrenceDaily:
		return current.AddDays(cfg.Interval)

	case milestone.RecurrenceWeekly:
		next := current.AddDays(cfg.Interval * 7)
		if cfg.DayOfWeek != nil {
			for Weekday(next) != *cfg.DayOfWeek {
				next = next.AddDays(1)
			}
		}
		return next

	case milestone.RecurrenceMonthly:
		// Months are counted from the due date's month so that clamping in a
		// short month never shifts later occurrences.
		monthsAhead := (step + 1) * cfg.Interval
		anchor := AddMonths(civil.Date{Year: dueDate.Year, Month: dueDate.Month, Day: 1}, monthsAhead)
		if cfg.MonthlyPattern == milestone.MonthlyPatternDayOfWeek && cfg.DayOfWeek != nil {
			return NthWeekdayOfMonth(anchor.Year, anchor.Month, *cfg.DayOfWeek, cfg.MonthlyWeekOrdinal)
		}
		day := cfg.MonthlyDate
		if day == 0 {
			day = dueDate.Day
		}
		return clampedDate(anchor.Year, anchor.Month, day)

	default:
		// Unreachable, Occurrences rejects unknown types up front.
		return current.AddDays(continuousHorizonDays + 1)
	}
}

// periodStart returns the first day of the working period belonging to an
// occurrence: one recurrence interval ending on the occurrence date. This
// assumes occurrences follow each other back to back, with no configurable
// lead time between them.
func periodStart(cfg milestone.RecurringConfig, occurrence civil.Date) civil.Date {
	switch cfg.Type {
	case milestone.RecurrenceDaily:
		return occurrence.AddDays(-(cfg.Interval - 1))
	case milestone.RecurrenceWeekly:
		return occurrence.AddDays(-(cfg.Interval*7 - 1))
	case milestone.RecurrenceMonthly:
		return AddMonths(occurrence, -cfg.Interval).AddDays(1)
	default:
		return occurrence
	}
}
