package schedule

import (
	"time"
)

// WorkSlot is one contiguous block of working time within a day.
// Duration is expressed in hours and is the authoritative figure for
// allocation; Start and End describe the slot's position in the day.
type WorkSlot struct {
	Start    string // "HH:MM"
	End      string // "HH:MM"
	Duration float64
}

// WeeklySchedule is the organization-wide work-hour pattern: an ordered list
// of work slots per weekday. A weekday with no slots is a non-working day.
// This is the single normalized representation; the legacy bare-number form
// is converted at the DTO boundary and never reaches the allocation engine.
type WeeklySchedule struct {
	Days map[time.Weekday][]WorkSlot
}

func (s WeeklySchedule) SlotsOn(day time.Weekday) []WorkSlot {
	return s.Days[day]
}

// HoursOn returns the total working hours configured for a weekday.
func (s WeeklySchedule) HoursOn(day time.Weekday) float64 {
	total := 0.0
	for _, slot := range s.Days[day] {
		total += slot.Duration
	}
	return total
}

// IsWorkingWeekday reports whether the weekday has at least one work slot.
func (s WeeklySchedule) IsWorkingWeekday(day time.Weekday) bool {
	return len(s.Days[day]) > 0
}

// Default returns the schedule used before any settings are stored:
// Monday to Friday, 09:00-17:00.
func Default() WeeklySchedule {
	days := make(map[time.Weekday][]WorkSlot, 5)
	for d := time.Monday; d <= time.Friday; d++ {
		days[d] = []WorkSlot{{Start: "09:00", End: "17:00", Duration: 8}}
	}
	return WeeklySchedule{Days: days}
}

// LegacySlots converts the legacy numeric day format (a bare number of hours)
// into the normalized slot representation. Zero or negative hours mean a
// non-working day and produce no slots.
func LegacySlots(hours float64) []WorkSlot {
	if hours <= 0 {
		return nil
	}
	return []WorkSlot{{Start: "09:00", End: "", Duration: hours}}
}
