package holiday

import (
	"context"
	"database/sql"
	"sort"
)

type RepositoryStub struct {
	nextId   int
	holidays map[int]Holiday
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{holidays: map[int]Holiday{}}
}

func (s *RepositoryStub) Store(ctx context.Context, holiday Holiday) (int, error) {
	s.nextId++
	holiday.ID = s.nextId
	s.holidays[holiday.ID] = holiday
	return holiday.ID, nil
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Holiday, error) {
	holidays := make([]Holiday, 0, len(s.holidays))
	for _, h := range s.holidays {
		holidays = append(holidays, h)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].StartDate.Before(holidays[j].StartDate)
	})
	return holidays, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id int) (Holiday, error) {
	if h, exists := s.holidays[id]; exists {
		return h, nil
	}
	return Holiday{}, sql.ErrNoRows
}

func (s *RepositoryStub) Update(ctx context.Context, holiday Holiday) (bool, error) {
	if _, exists := s.holidays[holiday.ID]; !exists {
		return false, nil
	}
	s.holidays[holiday.ID] = holiday
	return true, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	if _, exists := s.holidays[id]; !exists {
		return false, nil
	}
	delete(s.holidays, id)
	return true, nil
}
