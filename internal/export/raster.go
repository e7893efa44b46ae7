package export

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/render"
)

// RasterBackend strokes frames with gg. OnFrame receives the context's
// backing image, which is reused by the next frame.
type RasterBackend struct {
	Every   int
	OnFrame func(index int, img image.Image) error

	ctx   *gg.Context
	sets  *render.Sets
	frame int
}

func NewRasterBackend(w, h int, policy displace.Policy) *RasterBackend {
	return &RasterBackend{Every: 1, ctx: gg.NewContext(w, h), sets: render.NewSets(policy)}
}

func (b *RasterBackend) Name() string { return "raster" }

func (b *RasterBackend) Register(set geom.Set) (render.Handle, error) {
	return b.sets.Register(set), nil
}

func (b *RasterBackend) Clear(c color.RGBA) error {
	b.ctx.SetColor(c)
	b.ctx.Clear()
	return nil
}

func (b *RasterBackend) Draw(req render.DrawRequest) error {
	vs, err := b.sets.Resolve(req)
	if err != nil {
		return render.Fail(b.Name(), "draw", render.ErrDraw, err)
	}
	w, h := b.ctx.Width(), b.ctx.Height()
	b.ctx.SetColor(req.Color)
	b.ctx.SetLineWidth(float64(req.StrokeWidth))
	b.ctx.SetLineCapRound()
	b.ctx.SetLineJoinRound()

	switch req.Topology {
	case geom.LineStrip, geom.LineLoop:
		if len(vs) < 2 {
			return nil
		}
		for i, v := range vs {
			x, y := geom.ToScreen(v, w, h)
			if i == 0 {
				b.ctx.MoveTo(float64(x), float64(y))
			} else {
				b.ctx.LineTo(float64(x), float64(y))
			}
		}
		if req.Topology == geom.LineLoop {
			b.ctx.ClosePath()
		}
	default:
		for _, e := range geom.Edges(req.Topology, vs) {
			x1, y1 := geom.ToScreen(e.A, w, h)
			x2, y2 := geom.ToScreen(e.B, w, h)
			b.ctx.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
		}
	}
	b.ctx.Stroke()
	return nil
}

func (b *RasterBackend) Present() error {
	index := b.frame
	b.frame++
	if b.OnFrame == nil || !keep(index, b.Every) {
		return nil
	}
	if err := b.OnFrame(index, b.ctx.Image()); err != nil {
		return render.Fail(b.Name(), "present", render.ErrPresent, err)
	}
	return nil
}

// Image is the current frame buffer.
func (b *RasterBackend) Image() image.Image { return b.ctx.Image() }

// EncodePNG writes the current frame as PNG.
func (b *RasterBackend) EncodePNG(w io.Writer) error {
	return b.ctx.EncodePNG(w)
}
