package utils

import "time"

// Clock abstracts the current time so handlers that default date
// parameters to "today" stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock delegates to the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock reports a fixed instant.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
