package pacer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/wavelines/internal/metrics"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewState(t *testing.T) {
	s := NewState()
	if s.T != 0 || s.Ticks != 0 {
		t.Errorf("initial state = %+v, want zero time and ticks", s)
	}
	if !s.Emphasis {
		t.Error("emphasis should start raised")
	}
	if s.Flip() {
		t.Error("first flip should lower emphasis")
	}
	if !s.Flip() {
		t.Error("second flip should raise emphasis")
	}
}

func TestRunAdvancesOneStepPerTick(t *testing.T) {
	const n = 600
	p := New(WithClock(NewFakeClock(epoch)))
	frames := 0
	err := p.Run(context.Background(), Ticks(n), func(s *State) error {
		frames++
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != n {
		t.Errorf("rendered %d frames, want %d", frames, n)
	}
	st := p.State()
	if st.Ticks != n {
		t.Errorf("ticks = %d, want %d", st.Ticks, n)
	}
	if math.Abs(float64(st.T)-0.01*n) > 1e-3 {
		t.Errorf("t = %v, want %v", st.T, 0.01*n)
	}
}

func TestTimeIsMonotonic(t *testing.T) {
	p := New(WithClock(NewFakeClock(epoch)))
	prev := float32(-1)
	err := p.Run(context.Background(), Ticks(1000), func(s *State) error {
		if s.T <= prev {
			t.Fatalf("t went from %v to %v", prev, s.T)
		}
		prev = s.T
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestHintIsNowPlusInterval(t *testing.T) {
	clock := NewFakeClock(epoch)
	src := Ticks(5)
	src.Clock = clock
	p := New(WithClock(clock))

	if err := p.Run(context.Background(), src, nil); err != nil {
		t.Fatal(err)
	}
	if len(src.Hints) != 5 {
		t.Fatalf("got %d hints, want 5", len(src.Hints))
	}
	if !src.Hints[0].Equal(epoch.Add(DefaultInterval)) {
		t.Errorf("first hint = %v, want %v", src.Hints[0], epoch.Add(DefaultInterval))
	}
	for i := 1; i < len(src.Hints); i++ {
		if d := src.Hints[i].Sub(src.Hints[i-1]); d != DefaultInterval {
			t.Errorf("hint %d spacing = %v, want %v", i, d, DefaultInterval)
		}
	}
	if !p.Next().Equal(src.Hints[4]) {
		t.Errorf("Next() = %v, want last hint", p.Next())
	}
}

func TestLateTickDoesNotDoubleStep(t *testing.T) {
	clock := NewFakeClock(epoch)
	src := Ticks(3)
	src.Clock = clock
	src.Lag = 10 * DefaultInterval
	late := metrics.NewLateness()
	missed := metrics.NewMissed()
	p := New(WithClock(clock), WithMetrics(late, missed))

	var times []float32
	err := p.Run(context.Background(), src, func(s *State) error {
		times = append(times, s.T)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0.01, 0.02, 0.03}
	for i := range want {
		if math.Abs(float64(times[i]-want[i])) > 1e-6 {
			t.Errorf("frame %d t = %v, want %v", i, times[i], want[i])
		}
	}
	// Hints are rebased on the late delivery, not the missed schedule.
	if d := src.Hints[1].Sub(src.Hints[0]); d != 11*DefaultInterval {
		t.Errorf("hint spacing = %v, want %v", d, 11*DefaultInterval)
	}
	if missed.Value() == 0 {
		t.Error("late ticks should count as missed")
	}
	if late.Value() <= 0 {
		t.Error("lateness should be positive")
	}
}

func TestShutdownStopsWithoutRearm(t *testing.T) {
	src := NewScript(EventTick, EventShutdown, EventTick, EventTick)
	p := New(WithClock(NewFakeClock(epoch)))
	if err := p.Run(context.Background(), src, nil); err != nil {
		t.Fatal(err)
	}
	if p.State().Ticks != 1 {
		t.Errorf("ticks = %d, want 1", p.State().Ticks)
	}
	if len(src.Hints) != 1 {
		t.Errorf("hints = %d, want 1", len(src.Hints))
	}
	if src.Remaining() != 2 {
		t.Errorf("remaining = %d, want 2", src.Remaining())
	}
}

func TestOtherEventsIgnored(t *testing.T) {
	src := NewScript(EventOther, EventTick, EventOther, EventOther, EventTick, EventShutdown)
	p := New(WithClock(NewFakeClock(epoch)))
	frames := 0
	err := p.Run(context.Background(), src, func(*State) error {
		frames++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
	if len(src.Hints) != 2 {
		t.Errorf("hints = %d, want 2", len(src.Hints))
	}
}

func TestFrameErrorIsFatal(t *testing.T) {
	boom := errors.New("boom")
	p := New(WithClock(NewFakeClock(epoch)))
	frames := 0
	err := p.Run(context.Background(), Ticks(10), func(*State) error {
		frames++
		if frames == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
}

func TestRunHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New()
	err := p.Run(ctx, Ticks(5), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if p.State().Ticks != 0 {
		t.Error("no tick should run after cancel")
	}
}

func TestOptions(t *testing.T) {
	p := New(WithInterval(time.Second/30), WithStep(0.5))
	if p.Interval() != time.Second/30 {
		t.Errorf("interval = %v", p.Interval())
	}
	if err := p.Tick(nil, nil); err != nil {
		t.Fatal(err)
	}
	if p.State().T != 0.5 {
		t.Errorf("t = %v, want 0.5", p.State().T)
	}
	if New(WithInterval(-1)).Interval() != DefaultInterval {
		t.Error("non-positive interval should keep default")
	}
}

func TestFakeClock(t *testing.T) {
	c := NewFakeClock(epoch)
	c.Advance(time.Second)
	if !c.Now().Equal(epoch.Add(time.Second)) {
		t.Errorf("Advance: now = %v", c.Now())
	}
	c.Set(epoch)
	if !c.Now().Equal(epoch.Add(time.Second)) {
		t.Error("Set should not move backwards")
	}
	c.Set(epoch.Add(time.Minute))
	if !c.Now().Equal(epoch.Add(time.Minute)) {
		t.Errorf("Set: now = %v", c.Now())
	}
}

func TestTimerSource(t *testing.T) {
	src := NewTimerSource()
	ctx := context.Background()

	ev, err := src.Next(ctx)
	if err != nil || ev.Kind != EventTick {
		t.Fatalf("first event = %v, %v; want immediate tick", ev.Kind, err)
	}

	src.WakeAt(time.Now().Add(5 * time.Millisecond))
	start := time.Now()
	ev, err = src.Next(ctx)
	if err != nil || ev.Kind != EventTick {
		t.Fatalf("second event = %v, %v; want tick", ev.Kind, err)
	}
	if time.Since(start) < 4*time.Millisecond {
		t.Error("tick delivered before the hinted instant")
	}

	src.WakeAt(time.Now().Add(time.Hour))
	src.Close()
	src.Close()
	ev, _ = src.Next(ctx)
	if ev.Kind != EventShutdown {
		t.Errorf("after Close event = %v, want shutdown", ev.Kind)
	}
}

func TestTimerSourceCancel(t *testing.T) {
	src := NewTimerSource()
	ctx, cancel := context.WithCancel(context.Background())
	p := New()
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := p.Run(ctx, src, nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: %v", err)
	}
	if p.State().Ticks == 0 {
		t.Error("expected at least one tick")
	}
}

func TestEventKindString(t *testing.T) {
	tests := map[EventKind]string{
		EventTick:     "tick",
		EventShutdown: "shutdown",
		EventOther:    "other",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
