package gui

import (
	"context"
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/wavelines/internal/config"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/metrics"
	"github.com/san-kum/wavelines/internal/pacer"
	"github.com/san-kum/wavelines/internal/render"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// maxWait caps a single cooperative wait so close requests stay responsive.
const maxWait = 4 * time.Millisecond

type App struct {
	Config    *config.Config
	Pacer     *pacer.Pacer
	Orch      *render.Orchestrator
	ShowStats bool

	lateness *metrics.Lateness
	missed   *metrics.Missed
	frame    *metrics.FrameTime
}

// initWindow opens a resizable, multisampled window. Frame pacing is left to
// the pacer, so no target FPS is set.
func initWindow(w config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
}

func NewApp(cfg *config.Config) (*App, error) {
	if !rl.IsWindowReady() {
		return nil, render.Fail("raylib", "init", render.ErrSurface, nil)
	}

	a := &App{
		Config:   cfg,
		lateness: metrics.NewLateness(),
		missed:   metrics.NewMissed(),
		frame:    metrics.NewFrameTime(),
	}
	b := NewBackend(cfg.Policy())
	b.hud = a.drawStats

	orch, err := render.New(b, geom.Generate(cfg.GeomLayout()), cfg.Style())
	if err != nil {
		return nil, err
	}
	a.Orch = orch
	a.Pacer = pacer.New(
		pacer.WithInterval(cfg.Interval()),
		pacer.WithStep(cfg.Timing.Step),
		pacer.WithMetrics(a.lateness, a.missed, a.frame),
	)
	return a, nil
}

// Run opens the window and animates until it is closed or ctx is done.
// Styles received on the channel replace the stroke widths between frames.
func Run(ctx context.Context, cfg *config.Config, styles <-chan render.Style) error {
	initWindow(cfg.Window)
	defer rl.CloseWindow()

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	return app.RunLoop(ctx, styles)
}

func (a *App) RunLoop(ctx context.Context, styles <-chan render.Style) error {
	src := &Source{app: a}
	err := a.Pacer.Run(ctx, src, a.Orch.Restyling(styles))
	log.Printf("gui: raylib stopped after %d frames: %v", a.Orch.Frames(),
		metrics.Collect(a.lateness, a.missed, a.frame))
	return err
}

func (a *App) drawStats() {
	if !a.ShowStats {
		return
	}
	st := a.Pacer.State()
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 12, 12, 14, ColText)
	rl.DrawText(fmt.Sprintf("t %.2f  late %.2fms  missed %.0f%%",
		st.T, a.lateness.Value(), a.missed.Value()*100), 12, 30, 14, ColTextDim)
}

// Source feeds window events to the pacer. It waits in short slices until
// the hinted instant, polling input between slices.
type Source struct {
	app     *App
	wake    time.Time
	started bool
}

func (s *Source) WakeAt(t time.Time) { s.wake = t }

func (s *Source) Next(ctx context.Context) (pacer.Event, error) {
	for {
		if ctx.Err() != nil || rl.WindowShouldClose() {
			return pacer.Event{Kind: pacer.EventShutdown, At: time.Now()}, nil
		}
		// GetKeyPressed dequeues, so each press is seen once.
		switch rl.GetKeyPressed() {
		case 0:
		case rl.KeyQ:
			return pacer.Event{Kind: pacer.EventShutdown, At: time.Now()}, nil
		case rl.KeyTab:
			if s.app != nil {
				s.app.ShowStats = !s.app.ShowStats
			}
			return pacer.Event{Kind: pacer.EventOther, At: time.Now()}, nil
		default:
			return pacer.Event{Kind: pacer.EventOther, At: time.Now()}, nil
		}

		now := time.Now()
		if !s.started {
			s.started = true
			return pacer.Event{Kind: pacer.EventTick, At: now}, nil
		}
		if !now.Before(s.wake) {
			return pacer.Event{Kind: pacer.EventTick, At: now}, nil
		}

		wait := s.wake.Sub(now)
		if wait > maxWait {
			wait = maxWait
		}
		rl.WaitTime(wait.Seconds())
		rl.PollInputEvents()
	}
}
