package geom

const (
	DefaultPadding  = 0.1
	DefaultSegments = 100
)

// Layout controls where the pattern sits inside the surface.
type Layout struct {
	Padding  float32
	Segments int
}

func DefaultLayout() Layout {
	return Layout{Padding: DefaultPadding, Segments: DefaultSegments}
}

// Scene holds the three sets drawn every frame.
type Scene struct {
	Center Set
	Lines  Set
	Border Set
}

// MapRange linearly remaps s from [from0, from1] to [to0, to1]. A source
// range of zero width maps everything to to0.
func MapRange(from0, from1, to0, to1, s float32) float32 {
	if from1 == from0 {
		return to0
	}
	return to0 + (s-from0)*(to1-to0)/(from1-from0)
}

// Generate lays out the center line, the radiating segments and the
// border. Out-of-range layouts produce degenerate geometry, never an error.
func Generate(l Layout) Scene {
	lo, hi := -1+l.Padding, 1-l.Padding

	n := l.Segments + 1
	if n < 0 {
		n = 0
	}
	center := make([]Vertex, 0, n)
	lines := make([]Vertex, 0, 8*n)

	for i := 0; i <= l.Segments; i++ {
		x := MapRange(0, float32(l.Segments), lo, hi, float32(i))

		center = append(center, Vertex{x, 0})

		lines = append(lines,
			// top edge to left anchor
			Vertex{x, hi}, Vertex{lo, 0},
			// bottom edge to right anchor
			Vertex{x, lo}, Vertex{hi, 0},
			// top-right corner to center
			Vertex{hi, hi}, Vertex{x, 0},
			// bottom-left corner to center
			Vertex{lo, lo}, Vertex{x, 0},
		)
	}

	border := []Vertex{{lo, hi}, {hi, hi}, {hi, lo}, {lo, lo}}

	return Scene{
		Center: NewSet("center", LineStrip, center),
		Lines:  NewSet("lines", Segments, lines),
		Border: NewSet("border", LineLoop, border),
	}
}
