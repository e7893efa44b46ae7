package pacer

import (
	"context"
	"sync"
	"time"
)

type EventKind int

const (
	// EventOther is anything the pacer does not react to.
	EventOther EventKind = iota
	// EventTick means the scheduled wake instant was reached.
	EventTick
	// EventShutdown asks the loop to stop.
	EventShutdown
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventShutdown:
		return "shutdown"
	default:
		return "other"
	}
}

type Event struct {
	Kind EventKind
	At   time.Time
}

// Source delivers events to the pacer and accepts a hint for when the next
// tick should arrive. The hint is a lower bound; delivery may be late.
type Source interface {
	Next(ctx context.Context) (Event, error)
	WakeAt(t time.Time)
}

// Script replays a fixed event sequence without waiting and reports
// shutdown once it runs out. With a Clock set, each tick moves the clock
// to the last hint plus Lag, as if the source had waited.
type Script struct {
	Clock *FakeClock
	Lag   time.Duration
	Hints []time.Time

	events []Event
	pos    int
}

func NewScript(kinds ...EventKind) *Script {
	events := make([]Event, len(kinds))
	for i, k := range kinds {
		events[i] = Event{Kind: k}
	}
	return &Script{events: events}
}

// Ticks scripts n ticks followed by shutdown.
func Ticks(n int) *Script {
	kinds := make([]EventKind, 0, n+1)
	for i := 0; i < n; i++ {
		kinds = append(kinds, EventTick)
	}
	return NewScript(append(kinds, EventShutdown)...)
}

func (s *Script) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	if s.pos >= len(s.events) {
		return Event{Kind: EventShutdown}, nil
	}
	ev := s.events[s.pos]
	s.pos++
	if ev.Kind == EventTick && s.Clock != nil {
		if n := len(s.Hints); n > 0 {
			s.Clock.Set(s.Hints[n-1].Add(s.Lag))
		}
		ev.At = s.Clock.Now()
	}
	return ev, nil
}

func (s *Script) WakeAt(t time.Time) {
	s.Hints = append(s.Hints, t)
}

// Remaining is the number of scripted events not yet delivered.
func (s *Script) Remaining() int {
	return len(s.events) - s.pos
}

// TimerSource waits on a real timer until the hinted instant. The first
// call delivers a tick immediately. Cancelling the context or calling
// Close delivers shutdown.
type TimerSource struct {
	wake    time.Time
	started bool
	done    chan struct{}
	once    sync.Once
}

func NewTimerSource() *TimerSource {
	return &TimerSource{done: make(chan struct{})}
}

func (s *TimerSource) WakeAt(t time.Time) {
	s.wake = t
}

func (s *TimerSource) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *TimerSource) Next(ctx context.Context) (Event, error) {
	if !s.started {
		s.started = true
		return Event{Kind: EventTick, At: time.Now()}, nil
	}

	timer := time.NewTimer(time.Until(s.wake))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Event{Kind: EventShutdown, At: time.Now()}, nil
	case <-s.done:
		return Event{Kind: EventShutdown, At: time.Now()}, nil
	case now := <-timer.C:
		return Event{Kind: EventTick, At: now}, nil
	}
}
