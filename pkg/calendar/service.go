package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/gantty/gantty/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = fmt.Errorf("event not found")
var ErrInvalidEventTimes = fmt.Errorf("event end time must be after its start time")

type Service interface {
	AddEvent(ctx context.Context, event Event) (Event, error)
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	GetEventsForProject(ctx context.Context, projectId int) ([]Event, error)
	ModifyEvent(ctx context.Context, event Event) (Event, error)
	DeleteEvent(ctx context.Context, eventId uuid.UUID) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) AddEvent(ctx context.Context, event Event) (Event, error) {
	if !event.EndTime.After(event.StartTime) {
		return Event{}, ErrInvalidEventTimes
	}
	uid, err := s.repo.StoreEvent(ctx, event)
	if err != nil {
		return Event{}, err
	}
	event.UID = uid
	s.publishChange(ctx, event)
	return event, nil
}

func (s *ServiceImpl) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	return s.repo.GetEvents(ctx, from, to)
}

func (s *ServiceImpl) GetEventsForProject(ctx context.Context, projectId int) ([]Event, error) {
	return s.repo.GetEventsForProject(ctx, projectId)
}

func (s *ServiceImpl) ModifyEvent(ctx context.Context, event Event) (Event, error) {
	if !event.EndTime.After(event.StartTime) {
		return Event{}, ErrInvalidEventTimes
	}
	updated, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return Event{}, err
	}
	if !updated {
		log.Warnf("event not updated, probably because it does not exist (%s)", event.UID)
		return Event{}, ErrEventNotFound
	}
	s.publishChange(ctx, event)
	return event, nil
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, eventId uuid.UUID) error {
	deleted, err := s.repo.DeleteEvent(ctx, eventId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}
	s.publishChange(ctx, Event{UID: eventId})
	return nil
}

func (s *ServiceImpl) publishChange(ctx context.Context, event Event) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TypeCalendarEventChanged, event_bus.CalendarEventChanged{
		UID:       event.UID.String(),
		ProjectId: event.ProjectID,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
	}))
	if err != nil {
		log.Warnf("failed to publish calendar event change: %v", err)
	}
}
