package project

import (
	"time"

	"cloud.google.com/go/civil"
)

// WeekdaySet is a per-weekday flag set, indexed by time.Weekday (Sunday = 0).
// A project may carry one to override which weekdays count as working days
// for its own auto-estimate, independent of the global weekly schedule.
type WeekdaySet [7]bool

func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s[int(day)]
}

// Project is a plannable item on the timeline with a total hour budget.
// Dates have calendar-day precision. A continuous project has no fixed end
// and is treated as open-ended for allocation purposes.
type Project struct {
	ID             int
	Name           string
	StartDate      civil.Date
	EndDate        civil.Date
	EstimatedHours float64
	Continuous     bool
	// RowID is the placement lane within a group; entities sharing a row
	// must not overlap in time.
	RowID            int
	AutoEstimateDays *WeekdaySet
}
