package holiday

import (
	"cloud.google.com/go/civil"
)

// Holiday is an inclusive calendar-day range on which no work is allocated,
// regardless of the weekly schedule.
type Holiday struct {
	ID        int
	Name      string
	StartDate civil.Date
	EndDate   civil.Date
}

// Contains reports whether the given day falls within the holiday's
// inclusive range.
func (h Holiday) Contains(date civil.Date) bool {
	return !date.Before(h.StartDate) && !date.After(h.EndDate)
}

// AnyContains reports whether any of the holidays covers the given day.
func AnyContains(holidays []Holiday, date civil.Date) bool {
	for _, h := range holidays {
		if h.Contains(date) {
			return true
		}
	}
	return false
}
