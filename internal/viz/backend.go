package viz

import (
	"image/color"
	"math"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/render"
)

// CanvasBackend rasterizes draws onto a braille Canvas. Stroke widths are
// interpreted against WindowHeight pixels so the proportions follow the
// window host.
type CanvasBackend struct {
	Canvas       *Canvas
	WindowHeight int

	sets   *render.Sets
	frames int
}

func NewCanvasBackend(w, h, windowHeight int, policy displace.Policy) *CanvasBackend {
	if windowHeight <= 0 {
		windowHeight = 800
	}
	return &CanvasBackend{
		Canvas:       NewCanvas(w, h),
		WindowHeight: windowHeight,
		sets:         render.NewSets(policy),
	}
}

func (b *CanvasBackend) Name() string { return "canvas" }

func (b *CanvasBackend) Register(set geom.Set) (render.Handle, error) {
	return b.sets.Register(set), nil
}

// Clear wipes the canvas. Terminal cells have no background ink, so the
// color is not stored.
func (b *CanvasBackend) Clear(_ color.RGBA) error {
	b.Canvas.Clear()
	return nil
}

func (b *CanvasBackend) Draw(req render.DrawRequest) error {
	vs, err := b.sets.Resolve(req)
	if err != nil {
		return render.Fail(b.Name(), "draw", render.ErrDraw, err)
	}
	w, h := b.Canvas.PixelSize()
	radius := b.radius(req.StrokeWidth, h)
	for _, e := range geom.Edges(req.Topology, vs) {
		x1, y1 := geom.ToScreen(e.A, w-1, h-1)
		x2, y2 := geom.ToScreen(e.B, w-1, h-1)
		b.Canvas.DrawLine(round(x1), round(y1), round(x2), round(y2), radius, req.Color)
	}
	return nil
}

func (b *CanvasBackend) Present() error {
	b.frames++
	return nil
}

func (b *CanvasBackend) Frames() int { return b.frames }

// radius converts a stroke width in window pixels into extra dots on each
// side of the line.
func (b *CanvasBackend) radius(width float32, dots int) int {
	px := float64(width) * float64(dots) / float64(b.WindowHeight)
	return int(px / 2)
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}
