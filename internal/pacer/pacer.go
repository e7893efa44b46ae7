package pacer

import (
	"context"
	"log"
	"time"

	"github.com/san-kum/wavelines/internal/metrics"
)

// FrameFunc renders one frame. It may mutate s; an error is fatal.
type FrameFunc func(s *State) error

// Pacer turns tick events into a fixed-step animation clock.
type Pacer struct {
	clock    Clock
	interval time.Duration
	step     float32
	state    State
	next     time.Time
	metrics  []metrics.Metric
}

type Option func(*Pacer)

func WithClock(c Clock) Option {
	return func(p *Pacer) { p.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(p *Pacer) {
		if d > 0 {
			p.interval = d
		}
	}
}

func WithStep(step float32) Option {
	return func(p *Pacer) { p.step = step }
}

func WithMetrics(ms ...metrics.Metric) Option {
	return func(p *Pacer) { p.metrics = append(p.metrics, ms...) }
}

func New(opts ...Option) *Pacer {
	p := &Pacer{
		clock:    SystemClock{},
		interval: DefaultInterval,
		step:     DefaultStep,
		state:    NewState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns a copy of the current animation state.
func (p *Pacer) State() State { return p.state }

func (p *Pacer) Interval() time.Duration { return p.interval }

// Next is the wake instant requested by the most recent tick.
func (p *Pacer) Next() time.Time { return p.next }

// Tick handles one tick: it schedules the next wake (passing it to hint if
// non-nil), advances the clock by exactly one step however late the tick
// is, then renders.
func (p *Pacer) Tick(hint func(time.Time), frame FrameFunc) error {
	now := p.clock.Now()
	scheduled := p.next
	p.next = now.Add(p.interval)
	if hint != nil {
		hint(p.next)
	}

	p.state.T += p.step
	p.state.Ticks++

	var err error
	if frame != nil {
		err = frame(&p.state)
	}

	if len(p.metrics) > 0 {
		s := metrics.Sample{
			Tick:      p.state.Ticks,
			Scheduled: scheduled,
			Delivered: now,
			Interval:  p.interval,
			Render:    p.clock.Now().Sub(now),
		}
		for _, m := range p.metrics {
			m.Observe(s)
		}
	}
	return err
}

// Run consumes events from src until shutdown, a frame error or context
// cancellation. Events other than ticks and shutdown are ignored.
func (p *Pacer) Run(ctx context.Context, src Source, frame FrameFunc) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev, err := src.Next(ctx)
		if err != nil {
			return err
		}

		switch ev.Kind {
		case EventShutdown:
			log.Printf("pacer: shutdown after %d ticks (t=%.2f)", p.state.Ticks, p.state.T)
			return nil
		case EventTick:
			if err := p.Tick(src.WakeAt, frame); err != nil {
				return err
			}
		}
	}
}
