package render

import (
	"fmt"

	"github.com/san-kum/wavelines/internal/compute"
	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
)

// Sets is the CPU-side geometry store shared by backends that draw from
// plain vertex slices. It resolves a request into the vertices to stroke.
type Sets struct {
	sets   []geom.Set
	policy displace.Policy
	shader compute.Backend
}

// NewSets stores geometry shaded by policy. A nil policy uses the default
// noise wave.
func NewSets(policy displace.Policy) *Sets {
	if policy == nil {
		policy = displace.NewWave()
	}
	return &Sets{policy: policy}
}

// UseShader pins a shading stage; otherwise the process-wide one is used.
func (s *Sets) UseShader(b compute.Backend) {
	s.shader = b
}

func (s *Sets) Register(set geom.Set) Handle {
	s.sets = append(s.sets, set)
	return Handle(len(s.sets) - 1)
}

func (s *Sets) Lookup(h Handle) (geom.Set, bool) {
	if h < 0 || int(h) >= len(s.sets) {
		return geom.Set{}, false
	}
	return s.sets[h], true
}

func (s *Sets) Len() int { return len(s.sets) }

// Resolve returns freshly allocated effective positions for req. Stored
// vertices are never touched.
func (s *Sets) Resolve(req DrawRequest) ([]geom.Vertex, error) {
	set, ok := s.Lookup(req.Handle)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, req.Handle)
	}
	src := set.Vertices()
	if req.Shading == Static {
		return src, nil
	}

	shader := s.shader
	if shader == nil {
		shader = compute.GetBackend()
	}
	dst := make([]geom.Vertex, len(src))
	shader.Shade(dst, src, req.Uniforms, s.policy)
	return dst, nil
}
