package estimate

import (
	"cloud.google.com/go/civil"

	"github.com/gantty/gantty/pkg/holiday"
	"github.com/gantty/gantty/pkg/milestone"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gantty/gantty/pkg/schedule"
)

// Allocation is one milestone's share of work on a single day.
type Allocation struct {
	Date        civil.Date
	MilestoneID int
	Hours       float64
	// WorkingDay is false only for the collapse case where a milestone's
	// window contains no working days and the full load lands on the
	// milestone date itself.
	WorkingDay bool
}

// AllocateMilestone spreads a milestone's allocated hours evenly across the
// working days of its window. For a plain milestone the window runs from the
// project start to the milestone date. For a recurring milestone each
// occurrence distributes the full allocation over its own working period.
// A window without a single working day collapses the whole allocation onto
// the milestone date.
func AllocateMilestone(
	m milestone.Milestone,
	p project.Project,
	weekly schedule.WeeklySchedule,
	holidays []holiday.Holiday,
) []Allocation {
	if m.TimeAllocationHours <= 0 {
		return nil
	}

	if !m.IsRecurring() {
		return allocateWindow(m.ID, p.StartDate, m.EndDate, m.TimeAllocationHours, p, weekly, holidays)
	}

	projectEnd := p.EndDate
	if p.Continuous {
		projectEnd = p.StartDate.AddDays(continuousHorizonDays)
	}
	var out []Allocation
	for _, occ := range Occurrences(*m.Recurring, m.EndDate, p.StartDate, projectEnd, p.Continuous) {
		start := periodStart(*m.Recurring, occ)
		out = append(out, allocateWindow(m.ID, start, occ, m.TimeAllocationHours, p, weekly, holidays)...)
	}
	return out
}

func allocateWindow(
	milestoneID int,
	start, end civil.Date,
	hours float64,
	p project.Project,
	weekly schedule.WeeklySchedule,
	holidays []holiday.Holiday,
) []Allocation {
	if end.Before(start) {
		start = end
	}
	days := WorkingDaysBetween(start, end, weekly, holidays, p.AutoEstimateDays)
	if len(days) == 0 {
		return []Allocation{{Date: end, MilestoneID: milestoneID, Hours: hours, WorkingDay: false}}
	}

	perDay := hours / float64(len(days))
	out := make([]Allocation, 0, len(days))
	for _, d := range days {
		out = append(out, Allocation{Date: d, MilestoneID: milestoneID, Hours: perDay, WorkingDay: true})
	}
	return out
}
