package estimate

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gantty/gantty/pkg/calendar"
	"github.com/gantty/gantty/pkg/holiday"
	"github.com/gantty/gantty/pkg/milestone"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gantty/gantty/pkg/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday to Friday, first full week of June 2025.
func weekProject(t *testing.T, hours float64) project.Project {
	t.Helper()
	return project.Project{
		ID:             1,
		Name:           "Website relaunch",
		StartDate:      mustDate(t, "2025-06-02"),
		EndDate:        mustDate(t, "2025-06-06"),
		EstimatedHours: hours,
	}
}

func eventAt(t *testing.T, projectId int, day string, hours float64) calendar.Event {
	t.Helper()
	start, err := time.Parse(time.RFC3339, day+"T09:00:00Z")
	require.NoError(t, err)
	return calendar.Event{
		UID:       uuid.New(),
		Summary:   "Workshop",
		ProjectID: projectId,
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours * float64(time.Hour))),
	}
}

func totalHours(estimates []DayEstimate) float64 {
	sum := 0.0
	for _, e := range estimates {
		sum += e.Hours
	}
	return sum
}

func TestCalculateProjectDayEstimates_AutoEstimate(t *testing.T) {
	weekly := schedule.Default()

	t.Run("should split the estimate evenly across working days", func(t *testing.T) {
		// given
		p := weekProject(t, 10)

		// when
		estimates := CalculateProjectDayEstimates(p, nil, nil, weekly, nil)

		// then
		require.Len(t, estimates, 5)
		for _, e := range estimates {
			assert.Equal(t, 2.0, e.Hours)
			assert.Equal(t, SourceAutoEstimate, e.Source)
			assert.True(t, e.WorkingDay)
		}
	})

	t.Run("should redistribute hours when a holiday removes a day", func(t *testing.T) {
		// given
		p := weekProject(t, 10)
		holidays := []holiday.Holiday{
			{Name: "Bridge day", StartDate: mustDate(t, "2025-06-04"), EndDate: mustDate(t, "2025-06-04")},
		}

		// when
		estimates := CalculateProjectDayEstimates(p, nil, nil, weekly, holidays)

		// then
		require.Len(t, estimates, 4)
		for _, e := range estimates {
			assert.Equal(t, 2.5, e.Hours)
			assert.NotEqual(t, mustDate(t, "2025-06-04"), e.Date)
		}
	})

	t.Run("should respect the project weekday override", func(t *testing.T) {
		// given
		override := project.WeekdaySet{}
		override[time.Monday] = true
		override[time.Friday] = true
		p := weekProject(t, 8)
		p.AutoEstimateDays = &override

		// when
		estimates := CalculateProjectDayEstimates(p, nil, nil, weekly, nil)

		// then
		require.Len(t, estimates, 2)
		assert.Equal(t, mustDate(t, "2025-06-02"), estimates[0].Date)
		assert.Equal(t, mustDate(t, "2025-06-06"), estimates[1].Date)
		assert.Equal(t, 4.0, estimates[0].Hours)
	})

	t.Run("should bound a continuous project to a one year horizon", func(t *testing.T) {
		// given
		p := weekProject(t, 260)
		p.EndDate = civil.Date{}
		p.Continuous = true

		// when
		estimates := CalculateProjectDayEstimates(p, nil, nil, weekly, nil)

		// then
		assert.NotEmpty(t, estimates)
		last := estimates[len(estimates)-1]
		assert.False(t, last.Date.After(p.StartDate.AddDays(366)))
	})

	t.Run("should produce nothing for a zero estimate", func(t *testing.T) {
		// given
		p := weekProject(t, 0)

		// when
		estimates := CalculateProjectDayEstimates(p, nil, nil, weekly, nil)

		// then
		assert.Empty(t, estimates)
	})
}

func TestCalculateProjectDayEstimates_Events(t *testing.T) {
	weekly := schedule.Default()

	t.Run("should let a planned event claim its day and reduce the remaining estimate", func(t *testing.T) {
		// given
		p := weekProject(t, 10)
		events := []calendar.Event{eventAt(t, p.ID, "2025-06-02", 3)}

		// when
		estimates := CalculateProjectDayEstimates(p, nil, events, weekly, nil)

		// then
		require.Len(t, estimates, 5)
		assert.Equal(t, SourcePlannedEvent, estimates[0].Source)
		assert.Equal(t, 3.0, estimates[0].Hours)
		for _, e := range estimates[1:] {
			assert.Equal(t, SourceAutoEstimate, e.Source)
			assert.Equal(t, 1.75, e.Hours)
		}
	})

	t.Run("should sum multiple events on the same day", func(t *testing.T) {
		// given
		p := weekProject(t, 10)
		events := []calendar.Event{
			eventAt(t, p.ID, "2025-06-03", 2),
			eventAt(t, p.ID, "2025-06-03", 1.5),
		}

		// when
		estimates := CalculateProjectDayEstimates(p, nil, events, weekly, nil)

		// then
		var eventDay DayEstimate
		for _, e := range estimates {
			if e.Source == SourcePlannedEvent {
				eventDay = e
			}
		}
		assert.Equal(t, mustDate(t, "2025-06-03"), eventDay.Date)
		assert.Equal(t, 3.5, eventDay.Hours)
	})

	t.Run("should emit only event estimates when events exceed the budget", func(t *testing.T) {
		// given
		p := weekProject(t, 4)
		events := []calendar.Event{
			eventAt(t, p.ID, "2025-06-02", 3),
			eventAt(t, p.ID, "2025-06-03", 2),
		}

		// when
		estimates := CalculateProjectDayEstimates(p, nil, events, weekly, nil)

		// then
		require.Len(t, estimates, 2)
		for _, e := range estimates {
			assert.Equal(t, SourcePlannedEvent, e.Source)
		}
	})
}

func TestCalculateProjectDayEstimates_Milestones(t *testing.T) {
	weekly := schedule.Default()

	t.Run("should spread milestone hours over working days up to the due date", func(t *testing.T) {
		// given
		p := weekProject(t, 0)
		milestones := []milestone.Milestone{
			{ID: 7, ProjectID: p.ID, Name: "Design", EndDate: mustDate(t, "2025-06-06"), TimeAllocationHours: 10},
		}

		// when
		estimates := CalculateProjectDayEstimates(p, milestones, nil, weekly, nil)

		// then
		require.Len(t, estimates, 5)
		for _, e := range estimates {
			assert.Equal(t, SourceMilestoneAllocation, e.Source)
			assert.Equal(t, 7, e.MilestoneID)
			assert.Equal(t, 2.0, e.Hours)
		}
	})

	t.Run("should conserve the milestone allocation total", func(t *testing.T) {
		// given
		p := weekProject(t, 0)
		milestones := []milestone.Milestone{
			{ID: 1, ProjectID: p.ID, Name: "Phase 1", EndDate: mustDate(t, "2025-06-04"), TimeAllocationHours: 9},
		}

		// when
		estimates := CalculateProjectDayEstimates(p, milestones, nil, weekly, nil)

		// then
		assert.InDelta(t, 9.0, totalHours(estimates), 1e-9)
	})

	t.Run("should collapse onto the due date when no working day exists", func(t *testing.T) {
		// given
		p := weekProject(t, 0)
		holidays := []holiday.Holiday{
			{Name: "Shutdown", StartDate: mustDate(t, "2025-06-01"), EndDate: mustDate(t, "2025-06-08")},
		}
		milestones := []milestone.Milestone{
			{ID: 2, ProjectID: p.ID, Name: "Release", EndDate: mustDate(t, "2025-06-06"), TimeAllocationHours: 6},
		}

		// when
		estimates := CalculateProjectDayEstimates(p, milestones, nil, weekly, holidays)

		// then
		require.Len(t, estimates, 1)
		assert.Equal(t, mustDate(t, "2025-06-06"), estimates[0].Date)
		assert.Equal(t, 6.0, estimates[0].Hours)
		assert.False(t, estimates[0].WorkingDay)
	})

	t.Run("should drop milestone shares on days claimed by events", func(t *testing.T) {
		// given
		p := weekProject(t, 0)
		milestones := []milestone.Milestone{
			{ID: 3, ProjectID: p.ID, Name: "Build", EndDate: mustDate(t, "2025-06-06"), TimeAllocationHours: 10},
		}
		events := []calendar.Event{eventAt(t, p.ID, "2025-06-02", 4)}

		// when
		estimates := CalculateProjectDayEstimates(p, milestones, events, weekly, nil)

		// then
		require.Len(t, estimates, 5)
		assert.Equal(t, SourcePlannedEvent, estimates[0].Source)
		assert.Equal(t, 4.0, estimates[0].Hours)
		for _, e := range estimates[1:] {
			assert.Equal(t, SourceMilestoneAllocation, e.Source)
			assert.Equal(t, 2.0, e.Hours)
		}
	})

	t.Run("should suppress the auto estimate while milestones exist", func(t *testing.T) {
		// given
		p := weekProject(t, 10)
		milestones := []milestone.Milestone{
			{ID: 5, ProjectID: p.ID, Name: "Launch prep", EndDate: mustDate(t, "2025-06-04"), TimeAllocationHours: 10},
		}

		// when
		estimates := CalculateProjectDayEstimates(p, milestones, nil, weekly, nil)

		// then
		// Monday through Wednesday carry the milestone; Thursday and Friday
		// stay empty instead of receiving leftover project hours.
		require.Len(t, estimates, 3)
		for _, e := range estimates {
			assert.Equal(t, SourceMilestoneAllocation, e.Source)
		}
		assert.InDelta(t, 10.0, totalHours(estimates), 1e-9)
	})

	t.Run("should expand a recurring milestone across its occurrences", func(t *testing.T) {
		// given
		p := project.Project{
			ID:        1,
			Name:      "Operations",
			StartDate: mustDate(t, "2025-06-02"),
			EndDate:   mustDate(t, "2025-06-15"),
		}
		monday := time.Monday
		milestones := []milestone.Milestone{
			{
				ID:                  4,
				ProjectID:           p.ID,
				Name:                "Weekly report",
				EndDate:             mustDate(t, "2025-06-09"),
				TimeAllocationHours: 5,
				Recurring: &milestone.RecurringConfig{
					Type:      milestone.RecurrenceWeekly,
					Interval:  1,
					DayOfWeek: &monday,
				},
			},
		}

		// when
		estimates := CalculateProjectDayEstimates(p, milestones, nil, weekly, nil)

		// then
		// Only the June 9 occurrence fits the project range; June 16 is out.
		// Its working period (Tue Jun 3 to Mon Jun 9) has five working days.
		require.Len(t, estimates, 5)
		for _, e := range estimates {
			assert.Equal(t, SourceMilestoneAllocation, e.Source)
			assert.Equal(t, 4, e.MilestoneID)
		}
		assert.InDelta(t, 5.0, totalHours(estimates), 1e-9)
	})
}

func TestCalculateProjectDayEstimates_Properties(t *testing.T) {
	weekly := schedule.Default()

	t.Run("should be deterministic for identical inputs", func(t *testing.T) {
		// given
		p := weekProject(t, 10)
		milestones := []milestone.Milestone{
			{ID: 1, ProjectID: p.ID, Name: "Phase 1", EndDate: mustDate(t, "2025-06-04"), TimeAllocationHours: 4},
		}
		events := []calendar.Event{eventAt(t, p.ID, "2025-06-05", 2)}

		// when
		first := CalculateProjectDayEstimates(p, milestones, events, weekly, nil)
		second := CalculateProjectDayEstimates(p, milestones, events, weekly, nil)

		// then
		assert.Equal(t, first, second)
	})

	t.Run("should never produce negative hours", func(t *testing.T) {
		// given
		p := weekProject(t, 1)
		events := []calendar.Event{eventAt(t, p.ID, "2025-06-02", 8)}

		// when
		estimates := CalculateProjectDayEstimates(p, nil, events, weekly, nil)

		// then
		for _, e := range estimates {
			assert.GreaterOrEqual(t, e.Hours, 0.0)
		}
	})

	t.Run("should return estimates sorted by date", func(t *testing.T) {
		// given
		p := weekProject(t, 10)
		events := []calendar.Event{eventAt(t, p.ID, "2025-06-05", 2)}

		// when
		estimates := CalculateProjectDayEstimates(p, nil, events, weekly, nil)

		// then
		for i := 1; i < len(estimates); i++ {
			assert.False(t, estimates[i].Date.Before(estimates[i-1].Date))
		}
	})
}
