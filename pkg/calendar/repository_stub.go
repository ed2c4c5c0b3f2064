package calendar

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	events map[uuid.UUID]Event
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{events: map[uuid.UUID]Event{}}
}

func (s *RepositoryStub) StoreEvent(ctx context.Context, event Event) (uuid.UUID, error) {
	if event.UID == uuid.Nil {
		event.UID = uuid.New()
	}
	s.events[event.UID] = event
	return event.UID, nil
}

func (s *RepositoryStub) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	events := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if !e.StartTime.After(to) && !e.EndTime.Before(from) {
			events = append(events, e)
		}
	}
	sortByStart(events)
	return events, nil
}

func (s *RepositoryStub) GetEventsForProject(ctx context.Context, projectId int) ([]Event, error) {
	events := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if e.ProjectID == projectId {
			events = append(events, e)
		}
	}
	sortByStart(events)
	return events, nil
}

func (s *RepositoryStub) UpdateEvent(ctx context.Context, event Event) (bool, error) {
	if _, exists := s.events[event.UID]; !exists {
		return false, nil
	}
	s.events[event.UID] = event
	return true, nil
}

func (s *RepositoryStub) DeleteEvent(ctx context.Context, eventId uuid.UUID) (bool, error) {
	if _, exists := s.events[eventId]; !exists {
		return false, nil
	}
	delete(s.events, eventId)
	return true, nil
}

func sortByStart(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
