package timeline

import (
	"math"

	"cloud.google.com/go/civil"
)

// EntityKind identifies what is being dragged on the timeline.
type EntityKind string

const (
	KindProject   EntityKind = "project"
	KindMilestone EntityKind = "milestone"
	KindHoliday   EntityKind = "holiday"
)

// Action is the drag gesture being performed.
type Action string

const (
	ActionMove        Action = "move"
	ActionResizeStart Action = "resize-start-date"
	ActionResizeEnd   Action = "resize-end-date"
)

// ViewMode selects the pixel-to-day conversion ratio.
type ViewMode string

const (
	ModeDays  ViewMode = "days"
	ModeWeeks ViewMode = "weeks"
)

// Reason codes returned on validation failure.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInvertedRange    Reason = "inverted-range"
	ReasonDurationTooShort Reason = "duration-too-short"
	ReasonDurationTooLong  Reason = "duration-too-long"
	ReasonOverlapDetected  Reason = "overlap-detected"
)

const maxDurationDays = 365

// Pointer is a viewport position in pixels.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
}

// DurationDays counts the days in the range, both bounds included.
func (r DateRange) DurationDays() int {
	return r.End.DaysSince(r.Start) + 1
}

// Overlaps reports whether two inclusive day ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// DragState is the transient record of one drag gesture, created on
// pointer-down and updated on every pointer-move.
type DragState struct {
	EntityID      int
	Kind          EntityKind
	Action        Action
	Mode          ViewMode
	Origin        Pointer
	OriginalStart civil.Date
	OriginalEnd   civil.Date
	// LastDaysDelta is the last delta that passed validation. Callers use it
	// to skip redundant writes and to hold position on a rejected move.
	LastDaysDelta int
}

// Context carries everything CoordinateDrag needs besides the gesture itself.
type Context struct {
	// ColumnWidth is the rendered width of one timeline column in pixels.
	ColumnWidth float64
	// Siblings are the other entities occupying the same row, the dragged
	// entity excluded.
	Siblings []DateRange
}

// DragResult is the resolver's proposal for one pointer-move.
type DragResult struct {
	DaysDelta int        `json:"daysDelta"`
	NewStart  civil.Date `json:"newStart"`
	NewEnd    civil.Date `json:"newEnd"`
	IsValid   bool       `json:"isValid"`
	Reason    Reason     `json:"reason,omitempty"`
}

// CoordinateDrag converts a pointer position into a proposed date range for
// the dragged entity. It is pure: the same state, pointer, and context always
// produce the same result, and nothing is mutated. On rejection the original
// range is returned unchanged so the caller never renders a partial update.
func CoordinateDrag(state DragState, pointer Pointer, ctx Context) DragResult {
	daysDelta := pixelsToDays(pointer.X-state.Origin.X, state.Mode, ctx.ColumnWidth)

	newStart := state.OriginalStart
	newEnd := state.OriginalEnd
	switch state.Action {
	case ActionMove:
		newStart = newStart.AddDays(daysDelta)
		newEnd = newEnd.AddDays(daysDelta)
	case ActionResizeStart:
		newStart = newStart.AddDays(daysDelta)
	case ActionResizeEnd:
		newEnd = newEnd.AddDays(daysDelta)
	}

	proposed := DateRange{Start: newStart, End: newEnd}
	if reason := validate(state.Kind, proposed, ctx.Siblings); reason != ReasonNone {
		return DragResult{
			DaysDelta: state.LastDaysDelta,
			NewStart:  state.OriginalStart,
			NewEnd:    state.OriginalEnd,
			IsValid:   false,
			Reason:    reason,
		}
	}

	return DragResult{
		DaysDelta: daysDelta,
		NewStart:  newStart,
		NewEnd:    newEnd,
		IsValid:   true,
	}
}

func pixelsToDays(dx float64, mode ViewMode, columnWidth float64) int {
	if columnWidth <= 0 {
		return 0
	}
	daysPerColumn := 1.0
	if mode == ModeWeeks {
		daysPerColumn = 7.0
	}
	return int(math.Round(dx / columnWidth * daysPerColumn))
}

func validate(kind EntityKind, proposed DateRange, siblings []DateRange) Reason {
	days := proposed.DurationDays()
	if days < 1 {
		return ReasonInvertedRange
	}
	if days < 2 && kind != KindHoliday {
		return ReasonDurationTooShort
	}
	if days > maxDurationDays {
		return ReasonDurationTooLong
	}
	for _, sibling := range siblings {
		if proposed.Overlaps(sibling) {
			return ReasonOverlapDetected
		}
	}
	return ReasonNone
}
