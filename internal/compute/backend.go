package compute

import (
	"fmt"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
)

// Backend is a vertex shading stage: it turns stored positions into the
// positions a draw actually uses.
type Backend interface {
	Name() string
	Available() bool
	// Shade writes the displaced form of src into dst. dst must be at least
	// as long as src.
	Shade(dst, src []geom.Vertex, u displace.Uniforms, p displace.Policy)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend prefers the memoizing stage; results are identical to
// the plain per-vertex stage.
func AutoSelectBackend() Backend {
	memo := NewMemoBackend()
	if memo.Available() {
		return memo
	}
	return NewCPUBackend()
}

// Lookup returns a fresh backend by name.
func Lookup(name string) (Backend, error) {
	switch name {
	case "cpu":
		return NewCPUBackend(), nil
	case "memo":
		return NewMemoBackend(), nil
	case "parallel":
		return NewParallelBackend(), nil
	}
	return nil, fmt.Errorf("unknown shading backend: %s (available: %v)", name, Names())
}

func Names() []string {
	return []string{"cpu", "memo", "parallel"}
}
