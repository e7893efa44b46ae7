package pacer

import "time"

const (
	// DefaultInterval is the target tick period.
	DefaultInterval = time.Second / 60
	// DefaultStep is how far the animation clock moves per tick.
	DefaultStep float32 = 0.01
)

// State is the animation state a tick handler reads and mutates.
type State struct {
	T        float32
	Emphasis bool
	Ticks    uint64
}

// NewState returns the state before the first tick: t at zero and the
// emphasis flag raised, so the first flip of a frame lowers it.
func NewState() State {
	return State{Emphasis: true}
}

// Flip inverts the emphasis flag and returns the new value.
func (s *State) Flip() bool {
	s.Emphasis = !s.Emphasis
	return s.Emphasis
}
