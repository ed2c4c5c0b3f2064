package project

import (
	"context"
	"database/sql"
	"sort"
)

type RepositoryStub struct {
	nextId   int
	projects map[int]Project
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{projects: map[int]Project{}}
}

func (s *RepositoryStub) Store(ctx context.Context, project Project) (int, error) {
	s.nextId++
	project.ID = s.nextId
	s.projects[project.ID] = project
	return project.ID, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Project, error) {
	projects := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].RowID != projects[j].RowID {
			return projects[i].RowID < projects[j].RowID
		}
		return projects[i].StartDate.Before(projects[j].StartDate)
	})
	return projects, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (Project, error) {
	if p, exists := s.projects[id]; exists {
		return p, nil
	}
	return Project{}, sql.ErrNoRows
}

func (s *RepositoryStub) GetByRow(ctx context.Context, rowId int) ([]Project, error) {
	all, _ := s.GetAll(ctx)
	projects := make([]Project, 0, len(all))
	for _, p := range all {
		if p.RowID == rowId {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *RepositoryStub) Update(ctx context.Context, project Project) (bool, error) {
	if _, exists := s.projects[project.ID]; !exists {
		return false, nil
	}
	s.projects[project.ID] = project
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, exists := s.projects[id]; !exists {
		return false, nil
	}
	delete(s.projects, id)
	return true, nil
}
