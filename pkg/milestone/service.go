package milestone

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gantty/gantty/internal/event_bus"
	"github.com/gantty/gantty/pkg/project"
	log "github.com/sirupsen/logrus"
)

var ErrMilestoneNotFound = fmt.Errorf("milestone not found")
var ErrProjectNotFound = fmt.Errorf("project not found")
var ErrInvalidAllocation = fmt.Errorf("time allocation must not be negative")
var ErrInvalidRecurrence = fmt.Errorf("invalid recurrence configuration")

// ProjectReader is the narrow view of the project service this package needs.
type ProjectReader interface {
	Get(ctx context.Context, id int) (project.Project, error)
}

// AllocationCheck is the advisory over-budget report: the sum of milestone
// allocations compared against the owning project's total estimate. An
// over-budget project is a warning condition, never an allocation blocker.
type AllocationCheck struct {
	ProjectID      int
	EstimatedHours float64
	AllocatedHours float64
	OverBudget     bool
}

type Service interface {
	Create(ctx context.Context, milestone Milestone) (Milestone, error)
	GetAllForProject(ctx context.Context, projectId int) ([]Milestone, error)
	Update(ctx context.Context, milestone Milestone) (Milestone, error)
	Delete(ctx context.Context, id int) (bool, error)
	// ValidateAllocations checks whether the project's milestone hours
	// exceed its estimate.
	ValidateAllocations(ctx context.Context, projectId int) (AllocationCheck, error)
}

type ServiceImpl struct {
	repo     Repository
	projects ProjectReader
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, projects ProjectReader, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, projects: projects, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, milestone Milestone) (Milestone, error) {
	if err := s.validate(ctx, milestone); err != nil {
		return Milestone{}, err
	}
	id, err := s.repo.Store(ctx, milestone)
	if err != nil {
		return Milestone{}, err
	}
	milestone.ID = id
	s.publishChange(ctx, milestone)
	return milestone, nil
}

func (s *ServiceImpl) GetAllForProject(ctx context.Context, projectId int) ([]Milestone, error) {
	return s.repo.GetAllForProject(ctx, projectId)
}

func (s *ServiceImpl) Update(ctx context.Context, milestone Milestone) (Milestone, error) {
	if err := s.validate(ctx, milestone); err != nil {
		return Milestone{}, err
	}
	updated, err := s.repo.Update(ctx, milestone)
	if err != nil {
		return Milestone{}, err
	}
	if !updated {
		log.Warnf("milestone not updated, probably because it does not exist (%d)", milestone.ID)
		return Milestone{}, ErrMilestoneNotFound
	}
	s.publishChange(ctx, milestone)
	return milestone, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	milestone, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishChange(ctx, milestone)
	}
	return deleted, nil
}

func (s *ServiceImpl) ValidateAllocations(ctx context.Context, projectId int) (AllocationCheck, error) {
	p, err := s.projects.Get(ctx, projectId)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return AllocationCheck{}, ErrProjectNotFound
		}
		return AllocationCheck{}, err
	}
	milestones, err := s.repo.GetAllForProject(ctx, projectId)
	if err != nil {
		return AllocationCheck{}, err
	}

	allocated := 0.0
	for _, m := range milestones {
		allocated += m.TimeAllocationHours
	}
	check := AllocationCheck{
		ProjectID:      projectId,
		EstimatedHours: p.EstimatedHours,
		AllocatedHours: allocated,
		OverBudget:     allocated > p.EstimatedHours,
	}
	if check.OverBudget {
		log.Warnf("project %d milestones allocate %.2fh of a %.2fh estimate", projectId, allocated, p.EstimatedHours)
	}
	return check, nil
}

func (s *ServiceImpl) validate(ctx context.Context, milestone Milestone) error {
	if milestone.TimeAllocationHours < 0 {
		return ErrInvalidAllocation
	}
	if milestone.Recurring != nil {
		if result := ValidateRecurringConfig(*milestone.Recurring); !result.Valid {
			return fmt.Errorf("%w: %s", ErrInvalidRecurrence, result.Reason)
		}
	}
	if _, err := s.projects.Get(ctx, milestone.ProjectID); err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (s *ServiceImpl) publishChange(ctx context.Context, milestone Milestone) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TypeMilestoneChanged, event_bus.MilestoneChanged{
		Id:        milestone.ID,
		ProjectId: milestone.ProjectID,
	}))
	if err != nil {
		log.Warnf("failed to publish milestone change event: %v", err)
	}
}
