package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
)

// minChunk keeps small sets on the calling goroutine.
const minChunk = 256

// ParallelBackend splits each Shade call across worker goroutines. Policies
// must be safe for concurrent use; Wave and Static are.
type ParallelBackend struct {
	Workers int
}

func NewParallelBackend() *ParallelBackend {
	return &ParallelBackend{Workers: runtime.NumCPU()}
}

func (p *ParallelBackend) Name() string    { return "parallel" }
func (p *ParallelBackend) Available() bool { return p.Workers > 1 }
func (p *ParallelBackend) Cleanup()        {}

func (p *ParallelBackend) Shade(dst, src []geom.Vertex, u displace.Uniforms, pol displace.Policy) {
	ParallelFor(len(src), minChunk, p.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = pol.Displace(i, src[i], u)
		}
	})
}

// ParallelFor executes fn over [0, n) in contiguous chunks of at least
// minChunk, using up to workers goroutines.
func ParallelFor(n, minChunk, workers int, fn func(start, end int)) {
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
