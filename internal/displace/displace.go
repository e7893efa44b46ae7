package displace

import (
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/noise"
)

// DefaultFactor scales x before it is fed to the noise field, stretching
// the wave horizontally.
const DefaultFactor = 0.5

// Uniforms are the per-draw values every vertex of a draw sees.
type Uniforms struct {
	T        float32
	Emphasis bool
}

// Policy computes the effective position of one vertex within a draw.
type Policy interface {
	Displace(index int, v geom.Vertex, u Uniforms) geom.Vertex
}

// Wave moves vertices vertically by noise sampled at (t + x*Factor, 0).
// Without emphasis only odd-indexed vertices move; with emphasis all do.
type Wave struct {
	Field  noise.Field
	Factor float32
}

// NewWave returns the default wave over classic noise.
func NewWave() Wave {
	return Wave{Field: noise.Perlin{}, Factor: DefaultFactor}
}

// Moves reports whether the vertex at index is perturbed under u.
func Moves(index int, u Uniforms) bool {
	return u.Emphasis || index%2 != 0
}

// Offset is the vertical displacement for a vertex at x under u.
func (w Wave) Offset(x float32, u Uniforms) float32 {
	return w.Field.Eval(u.T+x*w.Factor, 0)
}

func (w Wave) Displace(index int, v geom.Vertex, u Uniforms) geom.Vertex {
	if !Moves(index, u) {
		return v
	}
	v.Y += w.Offset(v.X, u)
	return v
}

// Static leaves every vertex where it was generated.
type Static struct{}

func (Static) Displace(_ int, v geom.Vertex, _ Uniforms) geom.Vertex { return v }

// Apply evaluates p over every vertex of set without touching the set.
func Apply(p Policy, set geom.Set, u Uniforms) []geom.Vertex {
	out := make([]geom.Vertex, set.Len())
	for i := range out {
		out[i] = p.Displace(i, set.At(i), u)
	}
	return out
}
