package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gantty/gantty/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = fmt.Errorf("project not found")
var ErrInvalidRange = fmt.Errorf("project end date is before its start date")
var ErrInvalidEstimate = fmt.Errorf("estimated hours must be positive")

type Service interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id int) (Project, error)
	GetByRow(ctx context.Context, rowId int) ([]Project, error)
	Update(ctx context.Context, project Project) (Project, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, project Project) (Project, error) {
	if err := validate(project); err != nil {
		return Project{}, err
	}
	id, err := s.repo.Store(ctx, project)
	if err != nil {
		return Project{}, err
	}
	project.ID = id
	s.publishChange(ctx, project)
	return project, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, err
	}
	return project, nil
}

func (s *ServiceImpl) GetByRow(ctx context.Context, rowId int) ([]Project, error) {
	return s.repo.GetByRow(ctx, rowId)
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (Project, error) {
	if err := validate(project); err != nil {
		return Project{}, err
	}
	updated, err := s.repo.Update(ctx, project)
	if err != nil {
		return Project{}, err
	}
	if !updated {
		log.Warnf("project not updated, probably because it does not exist (%d)", project.ID)
		return Project{}, ErrProjectNotFound
	}
	s.publishChange(ctx, project)
	return project, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishChange(ctx, Project{ID: id})
	}
	return deleted, nil
}

func validate(project Project) error {
	if !project.Continuous && project.EndDate.Before(project.StartDate) {
		return ErrInvalidRange
	}
	if project.EstimatedHours <= 0 {
		return ErrInvalidEstimate
	}
	return nil
}

func (s *ServiceImpl) publishChange(ctx context.Context, project Project) {
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TypeProjectChanged, event_bus.ProjectChanged{
		Id:   project.ID,
		Name: project.Name,
	}))
	if err != nil {
		log.Warnf("failed to publish project change event: %v", err)
	}
}
