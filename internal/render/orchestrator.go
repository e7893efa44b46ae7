package render

import (
	"log"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/pacer"
)

const (
	DefaultCenterWidth float32 = 5.0
	DefaultLineWidth   float32 = 1.0
)

// Style holds the stroke widths. The border uses the narrow line width.
type Style struct {
	CenterWidth float32
	LineWidth   float32
}

func DefaultStyle() Style {
	return Style{CenterWidth: DefaultCenterWidth, LineWidth: DefaultLineWidth}
}

// Orchestrator owns the scene geometry and issues one frame per tick.
type Orchestrator struct {
	backend Backend
	style   Style
	scene   geom.Scene

	center Handle
	lines  Handle
	border Handle

	frames uint64
}

// New registers the three scene sets with b. Geometry is uploaded once.
func New(b Backend, scene geom.Scene, style Style) (*Orchestrator, error) {
	o := &Orchestrator{backend: b, style: style, scene: scene}

	var err error
	if o.lines, err = b.Register(scene.Lines); err != nil {
		return nil, wrap(b, string(OpRegister), ErrRegister, err)
	}
	if o.center, err = b.Register(scene.Center); err != nil {
		return nil, wrap(b, string(OpRegister), ErrRegister, err)
	}
	if o.border, err = b.Register(scene.Border); err != nil {
		return nil, wrap(b, string(OpRegister), ErrRegister, err)
	}

	log.Printf("render: %s registered center=%d lines=%d border=%d vertices",
		b.Name(), scene.Center.Len(), scene.Lines.Len(), scene.Border.Len())
	return o, nil
}

func (o *Orchestrator) Style() Style { return o.style }

// SetStyle swaps stroke widths from the next frame on.
func (o *Orchestrator) SetStyle(s Style) {
	o.style = s
}

func (o *Orchestrator) Scene() geom.Scene { return o.scene }

func (o *Orchestrator) Frames() uint64 { return o.frames }

func (o *Orchestrator) Backend() Backend { return o.backend }

// Frame clears the surface, flips emphasis around the lines and center
// draws, draws the static border and presents. It matches pacer.FrameFunc.
func (o *Orchestrator) Frame(s *pacer.State) error {
	if err := o.backend.Clear(Black); err != nil {
		return wrap(o.backend, string(OpClear), ErrDraw, err)
	}

	lines := displace.Uniforms{T: s.T, Emphasis: s.Flip()}
	if err := o.draw(o.lines, o.scene.Lines.Topology, o.style.LineWidth, lines, Displaced); err != nil {
		return err
	}

	center := displace.Uniforms{T: s.T, Emphasis: s.Flip()}
	if err := o.draw(o.center, o.scene.Center.Topology, o.style.CenterWidth, center, Displaced); err != nil {
		return err
	}

	border := displace.Uniforms{T: s.T}
	if err := o.draw(o.border, o.scene.Border.Topology, o.style.LineWidth, border, Static); err != nil {
		return err
	}

	if err := o.backend.Present(); err != nil {
		return wrap(o.backend, string(OpPresent), ErrPresent, err)
	}
	o.frames++
	return nil
}

func (o *Orchestrator) draw(h Handle, topo geom.Topology, width float32, u displace.Uniforms, sh Shading) error {
	req := DrawRequest{
		Handle:      h,
		Topology:    topo,
		StrokeWidth: width,
		Uniforms:    u,
		Shading:     sh,
		Color:       FragmentColor(u.Emphasis),
	}
	if err := o.backend.Draw(req); err != nil {
		return wrap(o.backend, string(OpDraw), ErrDraw, err)
	}
	return nil
}

// Restyling returns a frame function that applies the newest pending style
// before drawing. A nil channel never delivers.
func (o *Orchestrator) Restyling(styles <-chan Style) pacer.FrameFunc {
	return func(s *pacer.State) error {
	drain:
		for {
			select {
			case st := <-styles:
				o.SetStyle(st)
			default:
				break drain
			}
		}
		return o.Frame(s)
	}
}
