package estimate

import (
	"time"

	"cloud.google.com/go/civil"
)

// Weekday returns the day of week for a civil date.
func Weekday(date civil.Date) time.Weekday {
	return date.In(time.UTC).Weekday()
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampedDate(year int, month time.Month, day int) civil.Date {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return civil.Date{Year: year, Month: month, Day: day}
}

// AddMonths advances the date by the given number of months, clamping the
// day to the target month's last valid day instead of rolling over.
func AddMonths(date civil.Date, months int) civil.Date {
	// time.Date normalizes month overflow for us, anchored to day 1 so the
	// normalization never touches the day component.
	anchor := time.Date(date.Year, date.Month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	return clampedDate(anchor.Year(), anchor.Month(), date.Day)
}

// NthWeekdayOfMonth resolves the nth occurrence of a weekday within a month.
// Positive ordinals (1-4) count from the month's start; -1 is the last
// occurrence and -2 the second-to-last.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, ordinal int) civil.Date {
	if ordinal > 0 {
		first := civil.Date{Year: year, Month: month, Day: 1}
		offset := (int(weekday) - int(Weekday(first)) + 7) % 7
		return first.AddDays(offset + (ordinal-1)*7)
	}

	last := civil.Date{Year: year, Month: month, Day: daysInMonth(year, month)}
	offset := (int(Weekday(last)) - int(weekday) + 7) % 7
	// ordinal -1 lands on the last occurrence, -2 one week earlier.
	return last.AddDays(-offset + (ordinal+1)*7)
}
