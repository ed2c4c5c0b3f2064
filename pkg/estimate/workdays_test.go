package estimate

import (
	"testing"
	"time"

	"github.com/gantty/gantty/pkg/holiday"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gantty/gantty/pkg/schedule"
	"github.com/stretchr/testify/assert"
)

func TestIsWorkingDay(t *testing.T) {
	weekly := schedule.Default()

	t.Run("should treat weekdays as working and weekends as free", func(t *testing.T) {
		assert.True(t, IsWorkingDay(mustDate(t, "2025-06-02"), weekly, nil, nil))  // Monday
		assert.True(t, IsWorkingDay(mustDate(t, "2025-06-06"), weekly, nil, nil))  // Friday
		assert.False(t, IsWorkingDay(mustDate(t, "2025-06-07"), weekly, nil, nil)) // Saturday
		assert.False(t, IsWorkingDay(mustDate(t, "2025-06-08"), weekly, nil, nil)) // Sunday
	})

	t.Run("should treat holidays as non-working regardless of weekday", func(t *testing.T) {
		holidays := []holiday.Holiday{
			{Name: "Midsummer", StartDate: mustDate(t, "2025-06-04"), EndDate: mustDate(t, "2025-06-05")},
		}

		assert.False(t, IsWorkingDay(mustDate(t, "2025-06-04"), weekly, holidays, nil))
		assert.False(t, IsWorkingDay(mustDate(t, "2025-06-05"), weekly, holidays, nil))
		assert.True(t, IsWorkingDay(mustDate(t, "2025-06-03"), weekly, holidays, nil))
	})

	t.Run("should let a project override working weekdays", func(t *testing.T) {
		// Only Tuesday and Saturday count for this project.
		override := project.WeekdaySet{}
		override[time.Saturday] = true
		override[time.Tuesday] = true

		assert.True(t, IsWorkingDay(mustDate(t, "2025-06-07"), weekly, nil, &override))  // Saturday
		assert.False(t, IsWorkingDay(mustDate(t, "2025-06-02"), weekly, nil, &override)) // Monday
	})

	t.Run("should keep holiday precedence over the project override", func(t *testing.T) {
		override := project.WeekdaySet{}
		override[time.Wednesday] = true
		holidays := []holiday.Holiday{
			{Name: "Day off", StartDate: mustDate(t, "2025-06-04"), EndDate: mustDate(t, "2025-06-04")},
		}

		assert.False(t, IsWorkingDay(mustDate(t, "2025-06-04"), weekly, holidays, &override))
	})
}

func TestWorkingDaysBetween(t *testing.T) {
	weekly := schedule.Default()

	t.Run("should return weekdays of a full week in order", func(t *testing.T) {
		days := WorkingDaysBetween(mustDate(t, "2025-06-02"), mustDate(t, "2025-06-08"), weekly, nil, nil)

		assert.Len(t, days, 5)
		assert.Equal(t, mustDate(t, "2025-06-02"), days[0])
		assert.Equal(t, mustDate(t, "2025-06-06"), days[4])
	})

	t.Run("should skip holiday days", func(t *testing.T) {
		holidays := []holiday.Holiday{
			{Name: "Bridge day", StartDate: mustDate(t, "2025-06-04"), EndDate: mustDate(t, "2025-06-04")},
		}

		days := WorkingDaysBetween(mustDate(t, "2025-06-02"), mustDate(t, "2025-06-06"), weekly, holidays, nil)

		assert.Len(t, days, 4)
		assert.NotContains(t, days, mustDate(t, "2025-06-04"))
	})

	t.Run("should return nothing for an inverted range", func(t *testing.T) {
		days := WorkingDaysBetween(mustDate(t, "2025-06-06"), mustDate(t, "2025-06-02"), weekly, nil, nil)
		assert.Empty(t, days)
	})

	t.Run("should include a single working day range", func(t *testing.T) {
		days := WorkingDaysBetween(mustDate(t, "2025-06-03"), mustDate(t, "2025-06-03"), weekly, nil, nil)
		assert.Len(t, days, 1)
		assert.Equal(t, mustDate(t, "2025-06-03"), days[0])
	})
}
