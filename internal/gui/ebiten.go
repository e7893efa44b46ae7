package gui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/wavelines/internal/config"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/metrics"
	"github.com/san-kum/wavelines/internal/pacer"
	"github.com/san-kum/wavelines/internal/render"
)

// Game runs one pacer tick per ebiten Update into a Recorder and replays the
// recorded frame in Draw. Ebiten's TPS takes the place of the wake hint.
type Game struct {
	ctx       context.Context
	pacer     *pacer.Pacer
	orch      *render.Orchestrator
	rec       *render.Recorder
	frame     pacer.FrameFunc
	lateness  *metrics.Lateness
	showStats bool
}

func NewGame(ctx context.Context, cfg *config.Config, styles <-chan render.Style) (*Game, error) {
	rec := render.NewRecorder(cfg.Policy())
	orch, err := render.New(rec, geom.Generate(cfg.GeomLayout()), cfg.Style())
	if err != nil {
		return nil, err
	}
	g := &Game{
		ctx:      ctx,
		orch:     orch,
		rec:      rec,
		frame:    orch.Restyling(styles),
		lateness: metrics.NewLateness(),
	}
	g.pacer = pacer.New(
		pacer.WithInterval(cfg.Interval()),
		pacer.WithStep(cfg.Timing.Step),
		pacer.WithMetrics(g.lateness),
	)
	return g, nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showStats = !g.showStats
	}

	// Only the latest frame is replayed; older calls are dropped.
	g.rec.Reset()
	return g.pacer.Tick(nil, g.frame)
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for _, c := range g.rec.LastFrame() {
		switch c.Op {
		case render.OpClear:
			screen.Fill(c.Color)
		case render.OpDraw:
			for _, e := range c.Edges() {
				x1, y1 := geom.ToScreen(e.A, w, h)
				x2, y2 := geom.ToScreen(e.B, w, h)
				vector.StrokeLine(screen, x1, y1, x2, y2, c.Request.StrokeWidth, c.Color, true)
			}
		}
	}
	if g.showStats {
		st := g.pacer.State()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  t %.2f  late %.2fms",
			ebiten.ActualTPS(), st.T, g.lateness.Value()), 8, 8)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// RunEbiten opens an ebiten window and animates until it is closed.
func RunEbiten(ctx context.Context, cfg *config.Config, styles <-chan render.Style) error {
	g, err := NewGame(ctx, cfg, styles)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.Timing.FPS)

	err = ebiten.RunGame(g)
	log.Printf("gui: ebiten stopped after %d frames (lateness %.2fms)", g.orch.Frames(), g.lateness.Value())
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return render.Fail("ebiten", "run", render.ErrSurface, err)
	}
	return nil
}
