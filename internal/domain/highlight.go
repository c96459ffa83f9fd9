package domain

import "fmt"

// HighlightState is either idle or highlighting exactly one reading.
// The zero value is idle.
type HighlightState struct {
	index  int
	active bool
}

// Idle returns the no-highlight state.
func Idle() HighlightState { return HighlightState{} }

// Highlighted returns the state highlighting reading i.
func Highlighted(i int) HighlightState { return HighlightState{index: i, active: true} }

// Reading returns the highlighted reading index, or false when idle.
func (h HighlightState) Reading() (int, bool) { return h.index, h.active }

// IsIdle reports whether nothing is highlighted.
func (h HighlightState) IsIdle() bool { return !h.active }

func (h HighlightState) String() string {
	if !h.active {
		return "idle"
	}
	return fmt.Sprintf("highlighted(%d)", h.index)
}

// Transition describes the effect of one coordinator call.
//
// When State is highlighted, Marker is where the highlight marker goes and
// Viewport is the window centred on it. When State is idle the marker is
// removed and the viewport is left alone; Marker and Viewport are zero.
type Transition struct {
	From     HighlightState
	State    HighlightState
	Marker   Coord
	Viewport Viewport
}

// Changed reports whether the call moved the state machine.
func (t Transition) Changed() bool { return t.From != t.State }

// HighlightCoordinator owns the highlight for one reading set. It is not safe
// for concurrent use; the session drives it from a single goroutine.
type HighlightCoordinator struct {
	set      *ReadingSet
	halfSpan float64
	state    HighlightState
}

// NewHighlightCoordinator starts idle on set. halfSpan <= 0 falls back to DefaultHalfSpan.
func NewHighlightCoordinator(set *ReadingSet, halfSpan float64) *HighlightCoordinator {
	if halfSpan <= 0 {
		halfSpan = DefaultHalfSpan
	}
	return &HighlightCoordinator{set: set, halfSpan: halfSpan}
}

// State returns the current highlight.
func (c *HighlightCoordinator) State() HighlightState { return c.state }

// Select highlights reading i, replacing any previous highlight. Selecting the
// already highlighted reading re-centres on it. An invalid index leaves the
// state untouched.
func (c *HighlightCoordinator) Select(i int) (Transition, error) {
	r, err := c.set.Get(i)
	if err != nil {
		return Transition{From: c.state, State: c.state}, fmt.Errorf("select: %w", err)
	}

	t := Transition{
		From:     c.state,
		State:    Highlighted(i),
		Marker:   r.Coord(),
		Viewport: CenteredViewport(r.Coord(), c.halfSpan),
	}
	c.state = t.State
	return t, nil
}

// Clear drops the highlight.
func (c *HighlightCoordinator) Clear() Transition {
	t := Transition{From: c.state, State: Idle()}
	c.state = t.State
	return t
}

// Reset binds the coordinator to a newly loaded set and returns to idle.
func (c *HighlightCoordinator) Reset(set *ReadingSet) Transition {
	c.set = set
	return c.Clear()
}
