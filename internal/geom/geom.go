package geom

import "fmt"

// Vertex is a position in normalized device coordinates.
type Vertex struct {
	X, Y float32
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Topology tells a backend how consecutive vertices connect.
type Topology int

const (
	// LineStrip connects every vertex to the next one.
	LineStrip Topology = iota
	// Segments treats each consecutive pair as an independent line.
	Segments
	// LineLoop is a strip whose last vertex connects back to the first.
	LineLoop
)

func (t Topology) String() string {
	switch t {
	case LineStrip:
		return "line-strip"
	case Segments:
		return "segments"
	case LineLoop:
		return "line-loop"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// Set is an immutable vertex list with its topology.
type Set struct {
	Name     string
	Topology Topology
	vertices []Vertex
}

// NewSet copies vs so later changes by the caller do not leak in.
func NewSet(name string, topo Topology, vs []Vertex) Set {
	c := make([]Vertex, len(vs))
	copy(c, vs)
	return Set{Name: name, Topology: topo, vertices: c}
}

func (s Set) Len() int { return len(s.vertices) }

func (s Set) At(i int) Vertex { return s.vertices[i] }

// Vertices returns a copy of the stored positions.
func (s Set) Vertices() []Vertex {
	c := make([]Vertex, len(s.vertices))
	copy(c, s.vertices)
	return c
}

// Edge is one drawable line.
type Edge struct {
	A, B Vertex
}

// Edges expands vs into individual lines according to topo. A trailing
// unpaired vertex in a segment list is dropped; a loop of fewer than three
// vertices has no separate closing edge.
func Edges(topo Topology, vs []Vertex) []Edge {
	switch topo {
	case Segments:
		out := make([]Edge, 0, len(vs)/2)
		for i := 0; i+1 < len(vs); i += 2 {
			out = append(out, Edge{vs[i], vs[i+1]})
		}
		return out
	case LineStrip, LineLoop:
		if len(vs) < 2 {
			return nil
		}
		out := make([]Edge, 0, len(vs))
		for i := 0; i+1 < len(vs); i++ {
			out = append(out, Edge{vs[i], vs[i+1]})
		}
		if topo == LineLoop && len(vs) > 2 {
			out = append(out, Edge{vs[len(vs)-1], vs[0]})
		}
		return out
	}
	return nil
}

// ToScreen maps v onto a w×h pixel surface with y pointing down.
func ToScreen(v Vertex, w, h int) (float32, float32) {
	sx := (v.X + 1) / 2 * float32(w)
	sy := (1 - v.Y) / 2 * float32(h)
	return sx, sy
}
