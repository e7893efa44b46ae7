package render

import (
	"image/color"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
)

// Handle identifies geometry registered with a backend.
type Handle int

type Shading int

const (
	// Displaced runs vertices through the displacement policy.
	Displaced Shading = iota
	// Static draws vertices where they are stored.
	Static
)

func (s Shading) String() string {
	if s == Static {
		return "static"
	}
	return "displaced"
}

var (
	Black   = color.RGBA{0, 0, 0, 255}
	White   = color.RGBA{255, 255, 255, 255}
	DarkRed = color.RGBA{77, 0, 0, 255}
)

// FragmentColor is the stroke color for a draw with the given emphasis.
func FragmentColor(emphasis bool) color.RGBA {
	if emphasis {
		return DarkRed
	}
	return White
}

type DrawRequest struct {
	Handle      Handle
	Topology    geom.Topology
	StrokeWidth float32
	Uniforms    displace.Uniforms
	Shading     Shading
	Color       color.RGBA
}

// Backend receives the per-frame command stream. Every method failure is
// fatal to the frame in progress.
type Backend interface {
	Name() string
	Register(set geom.Set) (Handle, error)
	Clear(c color.RGBA) error
	Draw(req DrawRequest) error
	Present() error
}
