// Package compute provides the vertex shading stage that applies
// displacement at draw time.
//
// The package selects a backend at start-up:
//
//   - memo: caches noise offsets per distinct x within a draw
//   - cpu: evaluates the displacement policy vertex by vertex
//   - parallel: splits large sets across goroutines
//
// All three produce bit-identical positions.
//
//	backend := compute.GetBackend()
//	backend.Shade(dst, set.Vertices(), uniforms, displace.NewWave())
package compute
