package event_bus

import "time"

// Event types published by the planning packages. The estimate cache
// subscribes to all of them and drops cached allocations wholesale.
const (
	TypeProjectChanged       EventType = "project.changed"
	TypeMilestoneChanged     EventType = "milestone.changed"
	TypeHolidayChanged       EventType = "holiday.changed"
	TypeScheduleChanged      EventType = "schedule.changed"
	TypeCalendarEventChanged EventType = "calendar.event.changed"
)

type ProjectChanged struct {
	Id   int
	Name string
}

type MilestoneChanged struct {
	Id        int
	ProjectId int
}

type HolidayChanged struct {
	Id int
}

type ScheduleChanged struct{}

type CalendarEventChanged struct {
	UID       string
	ProjectId int
	StartTime time.Time
	EndTime   time.Time
}
