package estimate

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gantty/gantty/pkg/milestone"
	"github.com/stretchr/testify/assert"
)

func weekdayPtr(d time.Weekday) *time.Weekday {
	return &d
}

func TestOccurrences_Daily(t *testing.T) {
	t.Run("should expand every other day within the project range", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceDaily, Interval: 2}

		occurrences := Occurrences(cfg, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-02"), mustDate(t, "2025-06-10"), false)

		assert.Equal(t, []string{"2025-06-02", "2025-06-04", "2025-06-06", "2025-06-08", "2025-06-10"}, dateStrings(occurrences))
	})

	t.Run("should drop occurrences before the project start", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceDaily, Interval: 7}

		occurrences := Occurrences(cfg, mustDate(t, "2025-05-01"), mustDate(t, "2025-05-20"), mustDate(t, "2025-06-10"), false)

		assert.Equal(t, []string{"2025-05-22", "2025-05-29", "2025-06-05"}, dateStrings(occurrences))
	})

	t.Run("should never exceed the occurrence budget", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceDaily, Interval: 1}

		occurrences := Occurrences(cfg, mustDate(t, "2025-01-01"), mustDate(t, "2025-01-01"), mustDate(t, "2025-01-01"), true)

		assert.Len(t, occurrences, maxOccurrences)
	})

	t.Run("should expand an unknown recurrence type to nothing", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: "quarterly", Interval: 1}

		// A multi year range must not pick up stray occurrences either.
		occurrences := Occurrences(cfg, mustDate(t, "2025-01-01"), mustDate(t, "2025-01-01"), mustDate(t, "2028-01-01"), false)

		assert.Empty(t, occurrences)
	})
}

func TestOccurrences_Weekly(t *testing.T) {
	t.Run("should repeat weekly on the due weekday", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceWeekly, Interval: 1, DayOfWeek: weekdayPtr(time.Monday)}

		occurrences := Occurrences(cfg, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"), false)

		assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23", "2025-06-30"}, dateStrings(occurrences))
	})

	t.Run("should snap forward to the configured weekday after the first occurrence", func(t *testing.T) {
		// Due on a Wednesday, repeating on Fridays.
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceWeekly, Interval: 1, DayOfWeek: weekdayPtr(time.Friday)}

		occurrences := Occurrences(cfg, mustDate(t, "2025-06-04"), mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"), false)

		assert.Equal(t, []string{"2025-06-04", "2025-06-13", "2025-06-20", "2025-06-27"}, dateStrings(occurrences))
	})

	t.Run("should honor a multi week interval", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceWeekly, Interval: 2, DayOfWeek: weekdayPtr(time.Monday)}

		occurrences := Occurrences(cfg, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-01"), mustDate(t, "2025-06-30"), false)

		assert.Equal(t, []string{"2025-06-02", "2025-06-16", "2025-06-30"}, dateStrings(occurrences))
	})
}

func TestOccurrences_Monthly(t *testing.T) {
	t.Run("should clamp a month end date to shorter months without drifting", func(t *testing.T) {
		cfg := milestone.RecurringConfig{
			Type:           milestone.RecurrenceMonthly,
			Interval:       1,
			MonthlyPattern: milestone.MonthlyPatternDate,
			MonthlyDate:    31,
		}

		occurrences := Occurrences(cfg, mustDate(t, "2025-01-31"), mustDate(t, "2025-01-01"), mustDate(t, "2025-04-30"), false)

		assert.Equal(t, []string{"2025-01-31", "2025-02-28", "2025-03-31", "2025-04-30"}, dateStrings(occurrences))
	})

	t.Run("should repeat on the first Monday of each month", func(t *testing.T) {
		cfg := milestone.RecurringConfig{
			Type:               milestone.RecurrenceMonthly,
			Interval:           1,
			MonthlyPattern:     milestone.MonthlyPatternDayOfWeek,
			DayOfWeek:          weekdayPtr(time.Monday),
			MonthlyWeekOrdinal: 1,
		}

		occurrences := Occurrences(cfg, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-01"), mustDate(t, "2025-08-31"), false)

		assert.Equal(t, []string{"2025-06-02", "2025-07-07", "2025-08-04"}, dateStrings(occurrences))
	})

	t.Run("should repeat on the last Friday of each month", func(t *testing.T) {
		cfg := milestone.RecurringConfig{
			Type:               milestone.RecurrenceMonthly,
			Interval:           1,
			MonthlyPattern:     milestone.MonthlyPatternDayOfWeek,
			DayOfWeek:          weekdayPtr(time.Friday),
			MonthlyWeekOrdinal: milestone.WeekOrdinalLast,
		}

		occurrences := Occurrences(cfg, mustDate(t, "2025-06-27"), mustDate(t, "2025-06-01"), mustDate(t, "2025-08-31"), false)

		assert.Equal(t, []string{"2025-06-27", "2025-07-25", "2025-08-29"}, dateStrings(occurrences))
	})
}

func TestPeriodStart(t *testing.T) {
	t.Run("should cover the interval ending on a daily occurrence", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceDaily, Interval: 3}
		assert.Equal(t, mustDate(t, "2025-06-08"), periodStart(cfg, mustDate(t, "2025-06-10")))
	})

	t.Run("should cover the full week ending on a weekly occurrence", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceWeekly, Interval: 1}
		assert.Equal(t, mustDate(t, "2025-06-03"), periodStart(cfg, mustDate(t, "2025-06-09")))
	})

	t.Run("should cover the month ending on a monthly occurrence", func(t *testing.T) {
		cfg := milestone.RecurringConfig{Type: milestone.RecurrenceMonthly, Interval: 1}
		assert.Equal(t, mustDate(t, "2025-05-16"), periodStart(cfg, mustDate(t, "2025-06-15")))
	})
}

func dateStrings(dates []civil.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
