package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/render"
)

// Backend strokes every edge with DrawLineEx inside one
// BeginDrawing/EndDrawing pair per frame.
type Backend struct {
	sets    *render.Sets
	drawing bool
	hud     func()
}

func NewBackend(policy displace.Policy) *Backend {
	return &Backend{sets: render.NewSets(policy)}
}

func (b *Backend) Name() string { return "raylib" }

func (b *Backend) Register(set geom.Set) (render.Handle, error) {
	if !rl.IsWindowReady() {
		return 0, render.Fail(b.Name(), "register", render.ErrRegister, render.ErrSurface)
	}
	return b.sets.Register(set), nil
}

func (b *Backend) Clear(c color.RGBA) error {
	if !b.drawing {
		rl.BeginDrawing()
		b.drawing = true
	}
	rl.ClearBackground(toRL(c))
	return nil
}

func (b *Backend) Draw(req render.DrawRequest) error {
	if !b.drawing {
		return render.Fail(b.Name(), "draw", render.ErrDraw, render.ErrSurface)
	}
	vs, err := b.sets.Resolve(req)
	if err != nil {
		return render.Fail(b.Name(), "draw", render.ErrDraw, err)
	}

	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	col := toRL(req.Color)
	for _, e := range geom.Edges(req.Topology, vs) {
		x1, y1 := geom.ToScreen(e.A, w, h)
		x2, y2 := geom.ToScreen(e.B, w, h)
		rl.DrawLineEx(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), req.StrokeWidth, col)
	}
	return nil
}

func (b *Backend) Present() error {
	if !b.drawing {
		return render.Fail(b.Name(), "present", render.ErrPresent, render.ErrSurface)
	}
	if b.hud != nil {
		b.hud()
	}
	rl.EndDrawing()
	b.drawing = false
	return nil
}

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
