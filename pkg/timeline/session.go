package timeline

import (
	"errors"
	"sync"
)

var (
	ErrDragInProgress = errors.New("a drag session is already active")
	ErrNoActiveDrag   = errors.New("no active drag session")
)

// Session enforces the single-drag rule: one gesture at a time, started on
// pointer-down and ended on pointer-up. The resolver itself stays pure; this
// is the only stateful piece of the drag flow.
type Session struct {
	mu       sync.Mutex
	active   bool
	state    DragState
	lastGood DragResult
}

func NewSession() *Session {
	return &Session{}
}

// Begin starts a drag on pointer-down. A second pointer-down while dragging
// is rejected.
func (s *Session) Begin(state DragState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return ErrDragInProgress
	}
	s.active = true
	s.state = state
	s.lastGood = DragResult{
		DaysDelta: 0,
		NewStart:  state.OriginalStart,
		NewEnd:    state.OriginalEnd,
		IsValid:   true,
	}
	return nil
}

// Move resolves one pointer-move against the active drag. Valid results
// update the remembered position; rejected results keep the last valid one so
// the entity never renders in an invalid spot.
func (s *Session) Move(pointer Pointer, ctx Context) (DragResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return DragResult{}, ErrNoActiveDrag
	}

	result := CoordinateDrag(s.state, pointer, ctx)
	if result.IsValid {
		s.state.LastDaysDelta = result.DaysDelta
		s.lastGood = result
	}
	return result, nil
}

// End finishes the drag on pointer-up and returns the last valid result for
// the caller to commit (or discard, on cancel).
func (s *Session) End() (DragResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return DragResult{}, ErrNoActiveDrag
	}
	s.active = false
	final := s.lastGood
	s.state = DragState{}
	s.lastGood = DragResult{}
	return final, nil
}

// Active reports whether a drag session is in progress.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
