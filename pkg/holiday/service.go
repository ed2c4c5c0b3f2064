package holiday

import (
	"context"
	"fmt"

	"github.com/gantty/gantty/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrHolidayNotFound = fmt.Errorf("holiday not found")
var ErrInvalidRange = fmt.Errorf("holiday end date is before its start date")

type Service interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetAll(ctx context.Context) ([]Holiday, error)
	Update(ctx context.Context, holiday Holiday) (Holiday, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, holiday Holiday) (Holiday, error) {
	if holiday.EndDate.Before(holiday.StartDate) {
		return Holiday{}, ErrInvalidRange
	}
	id, err := s.repo.Store(ctx, holiday)
	if err != nil {
		return Holiday{}, err
	}
	holiday.ID = id
	s.publishChange(ctx, holiday.ID)
	return holiday, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Holiday, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, holiday Holiday) (Holiday, error) {
	if holiday.EndDate.Before(holiday.StartDate) {
		return Holiday{}, ErrInvalidRange
	}
	updated, err := s.repo.Update(ctx, holiday)
	if err != nil {
		return Holiday{}, err
	}
	if !updated {
		log.Warnf("holiday not updated, probably because it does not exist (%d)", holiday.ID)
		return Holiday{}, ErrHolidayNotFound
	}
	s.publishChange(ctx, holiday.ID)
	return holiday, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishChange(ctx, id)
	}
	return deleted, nil
}

func (s *ServiceImpl) publishChange(ctx context.Context, id int) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TypeHolidayChanged, event_bus.HolidayChanged{Id: id}))
	if err != nil {
		log.Warnf("failed to publish holiday change event: %v", err)
	}
}
