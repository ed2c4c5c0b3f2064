package estimate

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/gantty/gantty/pkg/calendar"
	"github.com/gantty/gantty/pkg/holiday"
	"github.com/gantty/gantty/pkg/milestone"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gantty/gantty/pkg/schedule"
)

// Narrow read interfaces over the domain services. The engine only ever
// reads; all writes stay with the owning packages.
type ProjectProvider interface {
	Get(ctx context.Context, id int) (project.Project, error)
}

type MilestoneProvider interface {
	GetAllForProject(ctx context.Context, projectId int) ([]milestone.Milestone, error)
}

type HolidayProvider interface {
	GetAll(ctx context.Context) ([]holiday.Holiday, error)
}

type ScheduleProvider interface {
	Get(ctx context.Context) (schedule.WeeklySchedule, error)
}

type EventProvider interface {
	GetEventsForProject(ctx context.Context, projectId int) ([]calendar.Event, error)
}

type Service interface {
	GetProjectDayEstimates(ctx context.Context, projectId int) ([]DayEstimate, error)
	IsWorkingDate(ctx context.Context, date time.Time) (bool, error)
}

type ServiceImpl struct {
	projects   ProjectProvider
	milestones MilestoneProvider
	holidays   HolidayProvider
	schedules  ScheduleProvider
	events     EventProvider
	cache      *Cache
}

func NewService(
	projects ProjectProvider,
	milestones MilestoneProvider,
	holidays HolidayProvider,
	schedules ScheduleProvider,
	events EventProvider,
	cache *Cache,
) *ServiceImpl {
	return &ServiceImpl{
		projects:   projects,
		milestones: milestones,
		holidays:   holidays,
		schedules:  schedules,
		events:     events,
		cache:      cache,
	}
}

// GetProjectDayEstimates computes (or serves from cache) the per-day workload
// projection for one project.
func (s *ServiceImpl) GetProjectDayEstimates(ctx context.Context, projectId int) ([]DayEstimate, error) {
	if cached, ok := s.cache.Get(projectId); ok {
		return cached, nil
	}

	p, err := s.projects.Get(ctx, projectId)
	if err != nil {
		return nil, fmt.Errorf("loading project %d: %w", projectId, err)
	}
	milestones, err := s.milestones.GetAllForProject(ctx, projectId)
	if err != nil {
		return nil, fmt.Errorf("loading milestones for project %d: %w", projectId, err)
	}
	events, err := s.events.GetEventsForProject(ctx, projectId)
	if err != nil {
		return nil, fmt.Errorf("loading events for project %d: %w", projectId, err)
	}
	weekly, err := s.schedules.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading weekly schedule: %w", err)
	}
	holidays, err := s.holidays.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}

	estimates := CalculateProjectDayEstimates(p, milestones, events, weekly, holidays)
	s.cache.Put(projectId, estimates)
	return estimates, nil
}

// IsWorkingDate reports whether the given calendar date is a working day
// under the global weekly schedule and holiday list.
func (s *ServiceImpl) IsWorkingDate(ctx context.Context, date time.Time) (bool, error) {
	weekly, err := s.schedules.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("loading weekly schedule: %w", err)
	}
	holidays, err := s.holidays.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("loading holidays: %w", err)
	}
	return IsWorkingDay(civil.DateOf(date), weekly, holidays, nil), nil
}
