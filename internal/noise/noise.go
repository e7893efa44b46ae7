package noise

import "math"

// Scale brings the blended corner contributions into roughly [-1, 1].
const Scale = 2.3

type vec4 [4]float32

// Field is a scalar 2D noise function.
type Field interface {
	Eval(x, y float32) float32
}

// Perlin is the classic gradient noise field.
type Perlin struct{}

func (Perlin) Eval(x, y float32) float32 { return Classic(x, y) }

// FieldFunc adapts a plain function to Field.
type FieldFunc func(x, y float32) float32

func (f FieldFunc) Eval(x, y float32) float32 { return f(x, y) }

func floor(x float32) float32 { return float32(math.Floor(float64(x))) }

func fract(x float32) float32 { return x - floor(x) }

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func mod289(x float32) float32 {
	return x - floor(x*(1.0/289.0))*289.0
}

func permute(x float32) float32 {
	return mod289((x*34.0 + 10.0) * x)
}

func taylorInvSqrt(r float32) float32 {
	return 1.79284291400159 - 0.85373472095314*r
}

// fade is the quintic interpolant 6t^5 - 15t^4 + 10t^3.
func fade(t float32) float32 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}

func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Classic evaluates 2D gradient noise at (x, y). Lattice coordinates are
// wrapped modulo 289 before hashing, gradients are renormalized with a
// first-order Taylor estimate of 1/sqrt(r), and corners are blended with the
// quintic fade.
func Classic(x, y float32) float32 {
	x0, y0 := floor(x), floor(y)
	fx, fy := fract(x), fract(y)

	pi := vec4{mod289(x0), mod289(y0), mod289(x0 + 1), mod289(y0 + 1)}
	pf := vec4{fx, fy, fx - 1, fy - 1}

	ix := vec4{pi[0], pi[2], pi[0], pi[2]}
	iy := vec4{pi[1], pi[1], pi[3], pi[3]}
	dx := vec4{pf[0], pf[2], pf[0], pf[2]}
	dy := vec4{pf[1], pf[1], pf[3], pf[3]}

	var gx, gy vec4
	for k := range ix {
		h := permute(permute(ix[k]) + iy[k])
		g := fract(h*(1.0/41.0))*2.0 - 1.0
		gy[k] = abs(g) - 0.5
		gx[k] = g - floor(g+0.5)
	}

	// corners: 0 = (0,0), 1 = (1,0), 2 = (0,1), 3 = (1,1)
	norm := vec4{
		taylorInvSqrt(gx[0]*gx[0] + gy[0]*gy[0]),
		taylorInvSqrt(gx[2]*gx[2] + gy[2]*gy[2]),
		taylorInvSqrt(gx[1]*gx[1] + gy[1]*gy[1]),
		taylorInvSqrt(gx[3]*gx[3] + gy[3]*gy[3]),
	}
	gx[0], gy[0] = gx[0]*norm[0], gy[0]*norm[0]
	gx[2], gy[2] = gx[2]*norm[1], gy[2]*norm[1]
	gx[1], gy[1] = gx[1]*norm[2], gy[1]*norm[2]
	gx[3], gy[3] = gx[3]*norm[3], gy[3]*norm[3]

	n00 := gx[0]*dx[0] + gy[0]*dy[0]
	n10 := gx[1]*dx[1] + gy[1]*dy[1]
	n01 := gx[2]*dx[2] + gy[2]*dy[2]
	n11 := gx[3]*dx[3] + gy[3]*dy[3]

	u, v := fade(pf[0]), fade(pf[1])
	nx0 := mix(n00, n10, u)
	nx1 := mix(n01, n11, u)
	return Scale * mix(nx0, nx1, v)
}
