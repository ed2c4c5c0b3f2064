package milestone

import (
	"context"
	"database/sql"
	"sort"
)

type RepositoryStub struct {
	nextId     int
	milestones map[int]Milestone
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{milestones: map[int]Milestone{}}
}

func (s *RepositoryStub) Store(ctx context.Context, milestone Milestone) (int, error) {
	s.nextId++
	milestone.ID = s.nextId
	s.milestones[milestone.ID] = milestone
	return milestone.ID, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (Milestone, error) {
	if m, exists := s.milestones[id]; exists {
		return m, nil
	}
	return Milestone{}, sql.ErrNoRows
}

func (s *RepositoryStub) GetAllForProject(ctx context.Context, projectId int) ([]Milestone, error) {
	milestones := make([]Milestone, 0, len(s.milestones))
	for _, m := range s.milestones {
		if m.ProjectID == projectId {
			milestones = append(milestones, m)
		}
	}
	sort.Slice(milestones, func(i, j int) bool {
		if milestones[i].EndDate != milestones[j].EndDate {
			return milestones[i].EndDate.Before(milestones[j].EndDate)
		}
		return milestones[i].ID < milestones[j].ID
	})
	return milestones, nil
}

func (s *RepositoryStub) Update(ctx context.Context, milestone Milestone) (bool, error) {
	if _, exists := s.milestones[milestone.ID]; !exists {
		return false, nil
	}
	s.milestones[milestone.ID] = milestone
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, exists := s.milestones[id]; !exists {
		return false, nil
	}
	delete(s.milestones, id)
	return true, nil
}
