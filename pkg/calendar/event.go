package calendar

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Event is an already-scheduled block of time. An event associated with a
// project claims its start date: the allocation engine will not distribute
// additional hours there.
type Event struct {
	UID     uuid.UUID
	Summary string
	// ProjectID is 0 when the event is not tied to a project.
	ProjectID int
	StartTime time.Time
	EndTime   time.Time
	Completed bool
}

// Day returns the calendar day the event is attributed to. Events that
// cross midnight are attributed to the day they start on.
func (e Event) Day() civil.Date {
	return civil.DateOf(e.StartTime)
}

// Hours returns the event's wall-clock duration in hours.
func (e Event) Hours() float64 {
	return e.EndTime.Sub(e.StartTime).Hours()
}
