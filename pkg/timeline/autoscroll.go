package timeline

// ScrollDirection tells the caller which way to scroll the viewport.
type ScrollDirection string

const (
	ScrollNone  ScrollDirection = "none"
	ScrollLeft  ScrollDirection = "left"
	ScrollRight ScrollDirection = "right"
)

// scrollEdgeZone is how close, in pixels, the pointer must be to a viewport
// edge before auto-scroll kicks in.
const scrollEdgeZone = 60.0

// maxScrollSpeed is the suggested scroll speed, in pixels per tick, when the
// pointer sits directly on the edge.
const maxScrollSpeed = 20.0

// ScrollSuggestion is advisory only. The resolver never moves the viewport
// itself.
type ScrollSuggestion struct {
	Direction ScrollDirection `json:"direction"`
	Speed     float64         `json:"speed"`
}

// SuggestScroll maps a pointer position within a viewport of the given width
// to a scroll suggestion. Speed scales linearly from zero at the edge-zone
// boundary to maxScrollSpeed at the edge itself.
func SuggestScroll(pointer Pointer, viewportWidth float64) ScrollSuggestion {
	if viewportWidth <= 0 {
		return ScrollSuggestion{Direction: ScrollNone}
	}

	if pointer.X < scrollEdgeZone {
		depth := scrollEdgeZone - pointer.X
		if depth > scrollEdgeZone {
			depth = scrollEdgeZone
		}
		return ScrollSuggestion{
			Direction: ScrollLeft,
			Speed:     maxScrollSpeed * depth / scrollEdgeZone,
		}
	}

	if pointer.X > viewportWidth-scrollEdgeZone {
		depth := pointer.X - (viewportWidth - scrollEdgeZone)
		if depth > scrollEdgeZone {
			depth = scrollEdgeZone
		}
		return ScrollSuggestion{
			Direction: ScrollRight,
			Speed:     maxScrollSpeed * depth / scrollEdgeZone,
		}
	}

	return ScrollSuggestion{Direction: ScrollNone}
}
