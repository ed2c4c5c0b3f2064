package schedule

import (
	"context"
	"fmt"

	"github.com/gantty/gantty/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Get(ctx context.Context) (WeeklySchedule, error)
	Update(ctx context.Context, schedule WeeklySchedule) (WeeklySchedule, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Get(ctx context.Context) (WeeklySchedule, error) {
	schedule, err := s.repo.Get(ctx)
	if err != nil {
		return WeeklySchedule{}, err
	}
	if len(schedule.Days) == 0 {
		return Default(), nil
	}
	return schedule, nil
}

func (s *ServiceImpl) Update(ctx context.Context, schedule WeeklySchedule) (WeeklySchedule, error) {
	for weekday, slots := range schedule.Days {
		for _, slot := range slots {
			if slot.Duration < 0 {
				return WeeklySchedule{}, fmt.Errorf("negative slot duration on %s", weekday)
			}
		}
	}
	if err := s.repo.Replace(ctx, schedule); err != nil {
		return WeeklySchedule{}, err
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TypeScheduleChanged, event_bus.ScheduleChanged{})); err != nil {
		log.Warnf("failed to publish schedule change event: %v", err)
	}
	return schedule, nil
}
