package estimate

import (
	"sort"

	"cloud.google.com/go/civil"

	"github.com/gantty/gantty/pkg/calendar"
	"github.com/gantty/gantty/pkg/holiday"
	"github.com/gantty/gantty/pkg/milestone"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gantty/gantty/pkg/schedule"
)

type Source string

const (
	SourcePlannedEvent        Source = "planned-event"
	SourceMilestoneAllocation Source = "milestone-allocation"
	SourceAutoEstimate        Source = "project-auto-estimate"
)

// DayEstimate is the projected workload of one project on one day. A day
// carries estimates from exactly one source: planned events beat milestone
// allocations, which beat the project level auto estimate.
type DayEstimate struct {
	Date        civil.Date `json:"date"`
	ProjectID   int        `json:"projectId"`
	Hours       float64    `json:"hours"`
	Source      Source     `json:"source"`
	MilestoneID int        `json:"milestoneId,omitempty"`
	WorkingDay  bool       `json:"workingDay"`
}

// CalculateProjectDayEstimates produces the per-day workload projection for a
// project, sorted by date. Planned events claim their days outright and each
// milestone spreads its allocation over its working window on the days that
// remain. Only when the project has no milestones does the project level
// estimate kick in: whatever is left of it after subtracting event time is
// split evenly across the unclaimed working days.
func CalculateProjectDayEstimates(
	p project.Project,
	milestones []milestone.Milestone,
	events []calendar.Event,
	weekly schedule.WeeklySchedule,
	holidays []holiday.Holiday,
) []DayEstimate {
	estimates := make([]DayEstimate, 0, 32)

	eventHours := ScheduledHours(events)
	claimed := make(map[civil.Date]bool, len(eventHours))
	totalEventHours := 0.0
	for day, hours := range eventHours {
		claimed[day] = true
		totalEventHours += hours
		estimates = append(estimates, DayEstimate{
			Date:       day,
			ProjectID:  p.ID,
			Hours:      hours,
			Source:     SourcePlannedEvent,
			WorkingDay: IsWorkingDay(day, weekly, holidays, p.AutoEstimateDays),
		})
	}

	for _, m := range milestones {
		for _, alloc := range AllocateMilestone(m, p, weekly, holidays) {
			if claimed[alloc.Date] {
				continue
			}
			estimates = append(estimates, DayEstimate{
				Date:        alloc.Date,
				ProjectID:   p.ID,
				Hours:       alloc.Hours,
				Source:      SourceMilestoneAllocation,
				MilestoneID: alloc.MilestoneID,
				WorkingDay:  alloc.WorkingDay,
			})
		}
	}

	if len(milestones) == 0 {
		estimates = append(estimates, autoEstimates(p, totalEventHours, claimed, weekly, holidays)...)
	}

	sort.Slice(estimates, func(i, j int) bool {
		if estimates[i].Date != estimates[j].Date {
			return estimates[i].Date.Before(estimates[j].Date)
		}
		return estimates[i].MilestoneID < estimates[j].MilestoneID
	})
	return estimates
}

func autoEstimates(
	p project.Project,
	totalEventHours float64,
	claimed map[civil.Date]bool,
	weekly schedule.WeeklySchedule,
	holidays []holiday.Holiday,
) []DayEstimate {
	if p.EstimatedHours <= 0 {
		return nil
	}
	remaining := p.EstimatedHours - totalEventHours
	if remaining <= 0 {
		return nil
	}

	end := p.EndDate
	if p.Continuous || end.IsZero() {
		end = p.StartDate.AddDays(continuousHorizonDays)
	}
	var days []civil.Date
	for _, d := range WorkingDaysBetween(p.StartDate, end, weekly, holidays, p.AutoEstimateDays) {
		if claimed[d] {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil
	}

	perDay := remaining / float64(len(days))
	out := make([]DayEstimate, 0, len(days))
	for _, d := range days {
		out = append(out, DayEstimate{
			Date:       d,
			ProjectID:  p.ID,
			Hours:      perDay,
			Source:     SourceAutoEstimate,
			WorkingDay: true,
		})
	}
	return out
}
