package board

// SelectionState is the selection state machine's current state.
type SelectionState uint8

const (
	StateIdle        SelectionState = iota // Nothing selected
	StateOneSelected                       // One tile selected and highlighted
	StateResolving                         // Two tiles selected, swap in flight
)

// String returns the string representation of a selection state.
func (s SelectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOneSelected:
		return "one-selected"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// InvalidPickPolicy decides what a non-swappable second pick does.
type InvalidPickPolicy uint8

const (
	// PickIgnore keeps the first selection.
	PickIgnore InvalidPickPolicy = iota
	// PickClear drops the first selection.
	PickClear
)

// ParseInvalidPickPolicy converts a config string. Unknown values map to PickIgnore.
func ParseInvalidPickPolicy(s string) InvalidPickPolicy {
	if s == "clear" {
		return PickClear
	}
	return PickIgnore
}

// String returns the config spelling of the policy.
func (p InvalidPickPolicy) String() string {
	if p == PickClear {
		return "clear"
	}
	return "ignore"
}

// Outcome reports what a Select call did.
type Outcome uint8

const (
	OutcomeIgnored     Outcome = iota // Input dropped, state unchanged
	OutcomeSelected                   // First tile selected
	OutcomeDeselected                 // Selected tile clicked again
	OutcomeSwapStarted                // Second tile selected, swap running
	OutcomeCleared                    // Invalid second pick cleared the selection
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeSelected:
		return "selected"
	case OutcomeDeselected:
		return "deselected"
	case OutcomeSwapStarted:
		return "swap-started"
	case OutcomeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Highlighter toggles a tile's selection visual.
type Highlighter func(t *Tile, on bool)

// SwapStarter begins a swap between two tiles.
type SwapStarter func(a, b *Tile) error

// SelectionController tracks up to two selected tiles. While a swap is in
// flight every Select call is dropped.
type SelectionController struct {
	selected  []*Tile
	animating bool
	policy    InvalidPickPolicy
	highlight Highlighter
	start     SwapStarter
}

// NewSelectionController creates an idle controller.
func NewSelectionController(policy InvalidPickPolicy, highlight Highlighter, start SwapStarter) *SelectionController {
	if highlight == nil {
		highlight = func(t *Tile, on bool) { t.highlighted = on }
	}
	return &SelectionController{
		selected:  make([]*Tile, 0, 2),
		policy:    policy,
		highlight: highlight,
		start:     start,
	}
}

// State returns the current state.
func (s *SelectionController) State() SelectionState {
	switch {
	case s.animating:
		return StateResolving
	case len(s.selected) == 1:
		return StateOneSelected
	default:
		return StateIdle
	}
}

// Animating reports whether a swap is in flight.
func (s *SelectionController) Animating() bool {
	return s.animating
}

// Selected returns the selected tiles in selection order.
func (s *SelectionController) Selected() []*Tile {
	return append([]*Tile(nil), s.selected...)
}

// Policy returns the invalid second pick policy.
func (s *SelectionController) Policy() InvalidPickPolicy {
	return s.policy
}

// Select feeds one tile click into the state machine.
func (s *SelectionController) Select(t *Tile) Outcome {
	if s.animating || t == nil {
		return OutcomeIgnored
	}

	if len(s.selected) == 0 {
		if !t.swappable {
			return OutcomeIgnored
		}
		s.selected = append(s.selected, t)
		s.highlight(t, true)
		return OutcomeSelected
	}

	first := s.selected[0]
	if t == first {
		s.highlight(first, false)
		s.selected = s.selected[:0]
		return OutcomeDeselected
	}

	if !t.swappable {
		if s.policy == PickClear {
			s.highlight(first, false)
			s.selected = s.selected[:0]
			return OutcomeCleared
		}
		return OutcomeIgnored
	}

	s.selected = append(s.selected, t)
	s.highlight(t, true)
	s.animating = true
	if s.start != nil {
		if err := s.start(first, t); err != nil {
			s.highlight(t, false)
			s.selected = s.selected[:1]
			s.animating = false
			return OutcomeIgnored
		}
	}
	return OutcomeSwapStarted
}

// Complete ends the resolving state: both tiles are un-highlighted and the
// selection is cleared.
func (s *SelectionController) Complete() {
	for _, t := range s.selected {
		s.highlight(t, false)
	}
	s.selected = s.selected[:0]
	s.animating = false
}

// Reset drops any selection without a swap.
func (s *SelectionController) Reset() {
	if s.animating {
		return
	}
	s.Complete()
}
