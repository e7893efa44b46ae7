package metrics

import "time"

// Sample describes one delivered tick.
type Sample struct {
	Tick      uint64
	Scheduled time.Time // zero for the first tick
	Delivered time.Time
	Interval  time.Duration
	Render    time.Duration
}

// Lag is how far past its scheduled wake the tick arrived.
func (s Sample) Lag() time.Duration {
	if s.Scheduled.IsZero() {
		return 0
	}
	if d := s.Delivered.Sub(s.Scheduled); d > 0 {
		return d
	}
	return 0
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Lateness is the mean lag in milliseconds.
type Lateness struct {
	name    string
	total   time.Duration
	samples int
}

func NewLateness() *Lateness {
	return &Lateness{name: "lateness_ms"}
}

func (l *Lateness) Name() string { return l.name }

func (l *Lateness) Observe(s Sample) {
	l.total += s.Lag()
	l.samples++
}

func (l *Lateness) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.total) / float64(l.samples) / float64(time.Millisecond)
}

func (l *Lateness) Reset() {
	l.total = 0
	l.samples = 0
}

// Missed is the fraction of ticks that arrived more than a full interval
// late, i.e. where at least one frame slot was skipped.
type Missed struct {
	name    string
	missed  int
	samples int
}

func NewMissed() *Missed {
	return &Missed{name: "missed"}
}

func (m *Missed) Name() string { return m.name }

func (m *Missed) Observe(s Sample) {
	m.samples++
	if s.Interval > 0 && s.Lag() > s.Interval {
		m.missed++
	}
}

func (m *Missed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.missed) / float64(m.samples)
}

func (m *Missed) Reset() {
	m.missed = 0
	m.samples = 0
}

// FrameTime is the mean tick handler duration in milliseconds.
type FrameTime struct {
	name    string
	total   time.Duration
	max     time.Duration
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "frame_ms"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) Observe(s Sample) {
	f.total += s.Render
	if s.Render > f.max {
		f.max = s.Render
	}
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.total) / float64(f.samples) / float64(time.Millisecond)
}

// Max is the slowest observed handler duration.
func (f *FrameTime) Max() time.Duration { return f.max }

func (f *FrameTime) Reset() {
	f.total = 0
	f.max = 0
	f.samples = 0
}

// Collect reads every metric into a name-keyed map.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
