package estimate

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gantty/gantty/pkg/milestone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, time.Sunday, Weekday(civil.Date{Year: 2025, Month: time.June, Day: 1}))
	assert.Equal(t, time.Monday, Weekday(civil.Date{Year: 2025, Month: time.June, Day: 2}))
	assert.Equal(t, time.Saturday, Weekday(civil.Date{Year: 2025, Month: time.May, Day: 31}))
}

func TestAddMonths(t *testing.T) {
	t.Run("should add months without clamping", func(t *testing.T) {
		result := AddMonths(mustDate(t, "2025-06-15"), 2)
		assert.Equal(t, mustDate(t, "2025-08-15"), result)
	})

	t.Run("should clamp to the last day of a shorter month", func(t *testing.T) {
		result := AddMonths(mustDate(t, "2025-01-31"), 1)
		assert.Equal(t, mustDate(t, "2025-02-28"), result)
	})

	t.Run("should clamp to February 29 in a leap year", func(t *testing.T) {
		result := AddMonths(mustDate(t, "2024-01-31"), 1)
		assert.Equal(t, mustDate(t, "2024-02-29"), result)
	})

	t.Run("should cross a year boundary", func(t *testing.T) {
		result := AddMonths(mustDate(t, "2025-11-30"), 3)
		assert.Equal(t, mustDate(t, "2026-02-28"), result)
	})

	t.Run("should subtract months", func(t *testing.T) {
		result := AddMonths(mustDate(t, "2025-03-31"), -1)
		assert.Equal(t, mustDate(t, "2025-02-28"), result)
	})
}

func TestNthWeekdayOfMonth(t *testing.T) {
	t.Run("should find the first Monday", func(t *testing.T) {
		result := NthWeekdayOfMonth(2025, time.June, time.Monday, 1)
		assert.Equal(t, mustDate(t, "2025-06-02"), result)
	})

	t.Run("should find the third Friday", func(t *testing.T) {
		result := NthWeekdayOfMonth(2025, time.June, time.Friday, 3)
		assert.Equal(t, mustDate(t, "2025-06-20"), result)
	})

	t.Run("should find the last Monday", func(t *testing.T) {
		result := NthWeekdayOfMonth(2025, time.June, time.Monday, milestone.WeekOrdinalLast)
		assert.Equal(t, mustDate(t, "2025-06-30"), result)
	})

	t.Run("should find the second to last Sunday", func(t *testing.T) {
		result := NthWeekdayOfMonth(2025, time.June, time.Sunday, milestone.WeekOrdinalSecondToLast)
		assert.Equal(t, mustDate(t, "2025-06-22"), result)
	})
}
