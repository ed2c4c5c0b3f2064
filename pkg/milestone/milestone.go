package milestone

import (
	"time"

	"cloud.google.com/go/civil"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

type MonthlyPattern string

const (
	// MonthlyPatternDate repeats on a fixed day of the month, clamped to the
	// month's last valid day.
	MonthlyPatternDate MonthlyPattern = "date"
	// MonthlyPatternDayOfWeek repeats on the nth weekday of the month.
	MonthlyPatternDayOfWeek MonthlyPattern = "dayOfWeek"
)

// Week ordinals for MonthlyPatternDayOfWeek. Positive values count from the
// start of the month; the negative specials count from its end.
const (
	WeekOrdinalLast         = -1
	WeekOrdinalSecondToLast = -2
)

// RecurringConfig describes how a recurring milestone repeats. A recurring
// milestone is a template: its concrete occurrences are computed on demand
// and never persisted.
type RecurringConfig struct {
	Type     RecurrenceType
	Interval int
	// DayOfWeek snaps weekly occurrences forward to this weekday, and names
	// the weekday for the monthly dayOfWeek pattern.
	DayOfWeek      *time.Weekday
	MonthlyPattern MonthlyPattern
	// MonthlyDate is the day of month for MonthlyPatternDate.
	MonthlyDate int
	// MonthlyWeekOrdinal selects the nth weekday for MonthlyPatternDayOfWeek.
	MonthlyWeekOrdinal int
}

// Milestone is a sub-budget of a project's hours tied to a due date. Its
// allocation period always starts at the owning project's start date; the
// stored start date of legacy records is meaningless and is never read.
type Milestone struct {
	ID        int
	ProjectID int
	Name      string
	// EndDate is the allocation's end boundary (the milestone's due date).
	EndDate             civil.Date
	TimeAllocationHours float64
	Recurring           *RecurringConfig
}

func (m Milestone) IsRecurring() bool {
	return m.Recurring != nil
}

// ValidationResult reports the outcome of a configuration check. Valid
// configurations carry an empty reason.
type ValidationResult struct {
	Valid  bool
	Reason string
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason}
}

// ValidateRecurringConfig checks a recurrence configuration eagerly, before
// it is handed to the occurrence expander. The expander is bounded against
// runaway configs regardless, but callers should reject invalid ones up
// front and surface the reason.
func ValidateRecurringConfig(cfg RecurringConfig) ValidationResult {
	if cfg.Interval < 1 {
		return invalid("interval must be at least 1")
	}
	switch cfg.Type {
	case RecurrenceDaily:
		return valid()
	case RecurrenceWeekly:
		if cfg.DayOfWeek != nil && (*cfg.DayOfWeek < time.Sunday || *cfg.DayOfWeek > time.Saturday) {
			return invalid("day of week must be between 0 (Sunday) and 6 (Saturday)")
		}
		return valid()
	case RecurrenceMonthly:
		switch cfg.MonthlyPattern {
		case MonthlyPatternDate:
			if cfg.MonthlyDate < 1 || cfg.MonthlyDate > 31 {
				return invalid("day of month must be between 1 and 31")
			}
			return valid()
		case MonthlyPatternDayOfWeek:
			if cfg.DayOfWeek == nil {
				return invalid("monthly dayOfWeek pattern requires a day of week")
			}
			if cfg.MonthlyWeekOrdinal == 0 || cfg.MonthlyWeekOrdinal > 4 || cfg.MonthlyWeekOrdinal < WeekOrdinalSecondToLast {
				return invalid("week ordinal must be 1-4, last (-1), or second-to-last (-2)")
			}
			return valid()
		default:
			return invalid("unknown monthly pattern: " + string(cfg.MonthlyPattern))
		}
	default:
		return invalid("unknown recurrence type: " + string(cfg.Type))
	}
}
