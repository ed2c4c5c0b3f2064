package schedule

import (
	"context"
)

type RepositoryStub struct {
	stored WeeklySchedule
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) Get(ctx context.Context) (WeeklySchedule, error) {
	return s.stored, nil
}

func (s *RepositoryStub) Replace(ctx context.Context, schedule WeeklySchedule) error {
	s.stored = schedule
	return nil
}
