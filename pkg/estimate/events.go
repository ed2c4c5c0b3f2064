package estimate

import (
	"cloud.google.com/go/civil"

	"github.com/gantty/gantty/pkg/calendar"
)

// ScheduledHours sums planned calendar event time per day. An event counts
// toward the calendar day it starts on, with its full wall clock duration.
func ScheduledHours(events []calendar.Event) map[civil.Date]float64 {
	hours := make(map[civil.Date]float64, len(events))
	for _, e := range events {
		h := e.Hours()
		if h <= 0 {
			continue
		}
		hours[e.Day()] += h
	}
	return hours
}
