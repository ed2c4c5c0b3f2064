package estimate

import (
	"cloud.google.com/go/civil"
	"github.com/gantty/gantty/pkg/holiday"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gantty/gantty/pkg/schedule"
)

// IsWorkingDay reports whether work may be allocated on the given day.
// Holidays always win; otherwise the project's per-weekday override decides
// when present, and the global weekly schedule when it is not.
func IsWorkingDay(
	date civil.Date,
	weekly schedule.WeeklySchedule,
	holidays []holiday.Holiday,
	autoDays *project.WeekdaySet,
) bool {
	if holiday.AnyContains(holidays, date) {
		return false
	}
	weekday := Weekday(date)
	if autoDays != nil {
		return autoDays.Contains(weekday)
	}
	return weekly.IsWorkingWeekday(weekday)
}

// WorkingDaysBetween returns the inclusive, ordered list of working days
// between start and end.
func WorkingDaysBetween(
	start, end civil.Date,
	weekly schedule.WeeklySchedule,
	holidays []holiday.Holiday,
	autoDays *project.WeekdaySet,
) []civil.Date {
	if end.Before(start) {
		return nil
	}
	days := make([]civil.Date, 0, end.DaysSince(start)+1)
	for date := start; !date.After(end); date = date.AddDays(1) {
		if IsWorkingDay(date, weekly, holidays, autoDays) {
			days = append(days, date)
		}
	}
	return days
}
