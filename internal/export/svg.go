package export

import (
	"bytes"
	"fmt"
	"image/color"

	svg "github.com/ajstarks/svgo"
	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/render"
)

// SVGBackend writes one standalone SVG document per presented frame and
// hands it to OnFrame. Coordinates are rounded to whole pixels.
type SVGBackend struct {
	Width, Height int
	Every         int
	OnFrame       func(index int, doc []byte) error

	sets   *render.Sets
	buf    bytes.Buffer
	canvas *svg.SVG
	frame  int
}

func NewSVGBackend(w, h int, policy displace.Policy) *SVGBackend {
	return &SVGBackend{Width: w, Height: h, Every: 1, sets: render.NewSets(policy)}
}

func (b *SVGBackend) Name() string { return "svg" }

func (b *SVGBackend) Register(set geom.Set) (render.Handle, error) {
	return b.sets.Register(set), nil
}

func (b *SVGBackend) Clear(c color.RGBA) error {
	b.buf.Reset()
	b.canvas = svg.New(&b.buf)
	b.canvas.Start(b.Width, b.Height)
	b.canvas.Rect(0, 0, b.Width, b.Height, "fill:"+rgb(c))
	return nil
}

func (b *SVGBackend) Draw(req render.DrawRequest) error {
	if b.canvas == nil {
		return render.Fail(b.Name(), "draw", render.ErrDraw, render.ErrSurface)
	}
	vs, err := b.sets.Resolve(req)
	if err != nil {
		return render.Fail(b.Name(), "draw", render.ErrDraw, err)
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round",
		rgb(req.Color), req.StrokeWidth)

	switch req.Topology {
	case geom.LineStrip, geom.LineLoop:
		if len(vs) < 2 {
			return nil
		}
		xs, ys := b.points(vs)
		if req.Topology == geom.LineLoop {
			b.canvas.Polygon(xs, ys, style)
		} else {
			b.canvas.Polyline(xs, ys, style)
		}
	default:
		b.canvas.Gstyle(style)
		for _, e := range geom.Edges(req.Topology, vs) {
			x1, y1 := b.pixel(e.A)
			x2, y2 := b.pixel(e.B)
			b.canvas.Line(x1, y1, x2, y2)
		}
		b.canvas.Gend()
	}
	return nil
}

func (b *SVGBackend) Present() error {
	if b.canvas == nil {
		return render.Fail(b.Name(), "present", render.ErrPresent, render.ErrSurface)
	}
	b.canvas.End()
	b.canvas = nil
	index := b.frame
	b.frame++
	if b.OnFrame == nil || !keep(index, b.Every) {
		return nil
	}
	doc := append([]byte(nil), b.buf.Bytes()...)
	if err := b.OnFrame(index, doc); err != nil {
		return render.Fail(b.Name(), "present", render.ErrPresent, err)
	}
	return nil
}

func (b *SVGBackend) pixel(v geom.Vertex) (int, int) {
	x, y := geom.ToScreen(v, b.Width, b.Height)
	return int(x + 0.5), int(y + 0.5)
}

func (b *SVGBackend) points(vs []geom.Vertex) ([]int, []int) {
	xs, ys := make([]int, len(vs)), make([]int, len(vs))
	for i, v := range vs {
		xs[i], ys[i] = b.pixel(v)
	}
	return xs, ys
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func keep(index, every int) bool {
	if every <= 1 {
		return true
	}
	return index%every == 0
}
