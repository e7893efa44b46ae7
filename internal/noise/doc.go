// Package noise provides the gradient noise that drives the wave motion.
//
// [Classic] is a float32 port of the well-known GLSL classic Perlin noise
// (permutation polynomial hashing, Taylor inverse square root, quintic fade).
// It is evaluated per vertex every frame, so it allocates nothing and keeps
// every intermediate in float32 to match what a shading stage computes.
//
//	dy := noise.Classic(t+x*0.5, 0)
package noise
