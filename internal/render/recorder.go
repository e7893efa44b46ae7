package render

import (
	"image/color"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
)

type Op string

const (
	OpRegister Op = "register"
	OpClear    Op = "clear"
	OpDraw     Op = "draw"
	OpPresent  Op = "present"
)

// Call is one recorded backend invocation. Draw calls carry the shaded
// vertices the request resolved to.
type Call struct {
	Op       Op
	Name     string
	Color    color.RGBA
	Request  DrawRequest
	Vertices []geom.Vertex
}

// Edges expands a recorded draw into drawable lines.
func (c Call) Edges() []geom.Edge {
	return geom.Edges(c.Request.Topology, c.Vertices)
}

// Recorder is a backend that keeps every call instead of drawing. The most
// recently presented frame stays available for replay.
type Recorder struct {
	Calls     []Call
	Presented int

	// Fail makes the named operation return an error wrapping the
	// matching sentinel.
	Fail map[Op]error

	sets    *Sets
	pending []Call
	last    []Call
}

func NewRecorder(policy displace.Policy) *Recorder {
	return &Recorder{sets: NewSets(policy)}
}

func (r *Recorder) Name() string { return "recorder" }

// Sets exposes the geometry store for callers that shade on their own.
func (r *Recorder) Sets() *Sets { return r.sets }

func (r *Recorder) fail(op Op, kind error) error {
	if err, ok := r.Fail[op]; ok {
		return Fail(r.Name(), string(op), kind, err)
	}
	return nil
}

func (r *Recorder) Register(set geom.Set) (Handle, error) {
	if err := r.fail(OpRegister, ErrRegister); err != nil {
		return 0, err
	}
	h := r.sets.Register(set)
	r.Calls = append(r.Calls, Call{Op: OpRegister, Name: set.Name})
	return h, nil
}

func (r *Recorder) Clear(c color.RGBA) error {
	if err := r.fail(OpClear, ErrDraw); err != nil {
		return err
	}
	call := Call{Op: OpClear, Color: c}
	r.Calls = append(r.Calls, call)
	r.pending = append(r.pending[:0], call)
	return nil
}

func (r *Recorder) Draw(req DrawRequest) error {
	if err := r.fail(OpDraw, ErrDraw); err != nil {
		return err
	}
	vs, err := r.sets.Resolve(req)
	if err != nil {
		return Fail(r.Name(), string(OpDraw), ErrDraw, err)
	}
	set, _ := r.sets.Lookup(req.Handle)
	call := Call{Op: OpDraw, Name: set.Name, Color: req.Color, Request: req, Vertices: vs}
	r.Calls = append(r.Calls, call)
	r.pending = append(r.pending, call)
	return nil
}

func (r *Recorder) Present() error {
	if err := r.fail(OpPresent, ErrPresent); err != nil {
		return err
	}
	r.Calls = append(r.Calls, Call{Op: OpPresent})
	r.last = append(r.last[:0], r.pending...)
	r.pending = r.pending[:0]
	r.Presented++
	return nil
}

// LastFrame returns the clear and draw calls of the latest presented frame.
func (r *Recorder) LastFrame() []Call {
	out := make([]Call, len(r.last))
	copy(out, r.last)
	return out
}

// Draws filters recorded draw calls.
func (r *Recorder) Draws() []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == OpDraw {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops the call history but keeps registered geometry.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.pending = nil
	r.last = nil
	r.Presented = 0
}
