package render

import (
	"image/color"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
)

// Null discards all drawing. It still resolves draws through the shading
// stage so timing runs measure the full per-frame cost.
type Null struct {
	sets *Sets
}

func NewNull(policy displace.Policy) *Null {
	return &Null{sets: NewSets(policy)}
}

func (n *Null) Name() string { return "null" }

func (n *Null) Sets() *Sets { return n.sets }

func (n *Null) Register(set geom.Set) (Handle, error) {
	return n.sets.Register(set), nil
}

func (n *Null) Clear(_ color.RGBA) error { return nil }

func (n *Null) Draw(req DrawRequest) error {
	_, err := n.sets.Resolve(req)
	return err
}

func (n *Null) Present() error { return nil }
