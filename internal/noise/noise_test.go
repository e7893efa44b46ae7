package noise

import (
	"math"
	"testing"
)

func TestClassicDeterministic(t *testing.T) {
	points := [][2]float32{{0.3, 0.7}, {-12.25, 4.5}, {100.1, 0}, {288.9, -288.9}, {1e3, 1e-3}}
	for _, p := range points {
		a := Classic(p[0], p[1])
		b := Classic(p[0], p[1])
		if math.Float32bits(a) != math.Float32bits(b) {
			t.Errorf("Classic(%v, %v): %v then %v", p[0], p[1], a, b)
		}
	}
}

func TestClassicBounded(t *testing.T) {
	const limit = 2.4
	var peak float32
	for x := float32(-50); x <= 50; x += 0.37 {
		for y := float32(-50); y <= 50; y += 0.41 {
			v := Classic(x, y)
			if math.IsNaN(float64(v)) {
				t.Fatalf("Classic(%v, %v) is NaN", x, y)
			}
			if v < -limit || v > limit {
				t.Fatalf("Classic(%v, %v) = %v outside [-%v, %v]", x, y, v, limit, limit)
			}
			if abs(v) > peak {
				peak = abs(v)
			}
		}
	}
	if peak == 0 {
		t.Error("field is flat over the sampled domain")
	}
}

func TestClassicZeroOnLattice(t *testing.T) {
	for x := -5; x <= 5; x++ {
		for y := -5; y <= 5; y++ {
			if v := Classic(float32(x), float32(y)); v != 0 {
				t.Errorf("Classic(%d, %d) = %v, want 0", x, y, v)
			}
		}
	}
}

func TestClassicContinuous(t *testing.T) {
	const h = 1e-3
	for x := float32(-3); x < 3; x += 0.013 {
		a := Classic(x, 0.25)
		b := Classic(x+h, 0.25)
		if d := abs(b - a); d > 0.01 {
			t.Fatalf("jump of %v between x=%v and x=%v", d, x, x+h)
		}
	}
}

func TestClassicAcrossCellBoundary(t *testing.T) {
	// both sides of an integer edge must agree to first order
	for x := float32(-4); x <= 4; x++ {
		left := Classic(x-1e-4, 0.5)
		right := Classic(x+1e-4, 0.5)
		if d := abs(right - left); d > 5e-3 {
			t.Errorf("discontinuity %v at x=%v", d, x)
		}
	}
}

func TestClassicVariesAlongLine(t *testing.T) {
	// the animation samples y=0 only; it still has to move
	seen := map[float32]bool{}
	for i := 0; i < 50; i++ {
		seen[Classic(float32(i)*0.173+0.05, 0)] = true
	}
	if len(seen) < 40 {
		t.Errorf("only %d distinct values along y=0", len(seen))
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"mod289 wraps", mod289(290), 1},
		{"mod289 negative", mod289(-1), 288},
		{"mod289 identity", mod289(17), 17},
		{"permute zero", permute(0), 0},
		{"permute one", permute(1), 44},
		{"permute two", permute(2), 156},
		{"fade start", fade(0), 0},
		{"fade end", fade(1), 1},
		{"fade mid", fade(0.5), 0.5},
		{"mix", mix(2, 4, 0.25), 2.5},
		{"fract", fract(-0.25), 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(float64(tt.got-tt.want)) > 1e-5 {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestTaylorInvSqrtGradientScale(t *testing.T) {
	// hashed gradients have squared length in [0.125, 0.25]; after the
	// estimate their length lands in a narrow band below one
	for r := float32(0.125); r <= 0.25; r += 0.005 {
		l := float32(math.Sqrt(float64(r))) * taylorInvSqrt(r)
		if l < 0.55 || l > 0.85 {
			t.Errorf("scaled gradient length %v for r=%v", l, r)
		}
	}
}

func TestFieldAdapters(t *testing.T) {
	var f Field = Perlin{}
	if f.Eval(1.5, 0.5) != Classic(1.5, 0.5) {
		t.Error("Perlin.Eval differs from Classic")
	}
	flat := FieldFunc(func(x, y float32) float32 { return 0.25 })
	if flat.Eval(9, 9) != 0.25 {
		t.Error("FieldFunc did not forward")
	}
}

func BenchmarkClassic(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += Classic(float32(i)*0.01, 0)
	}
	_ = sink
}

// Reference values evaluated from the GLSL classic noise in float64.
func TestClassicKnownValues(t *testing.T) {
	tests := []struct {
		x, y float32
		want float64
	}{
		{0.3, 0, -0.0207100},
		{0.77, 0, -0.0382398},
		{1.7, 0, -0.3912988},
		{-12.45, 0, -0.4093789},
		{41.9, 0.25, -0.2345448},
		{0.5, 0.5, 0.3910856},
		{-3.2, 7.7, 0.3582569},
		{123.456, -0.3, -0.2042705},
	}
	for _, tt := range tests {
		got := float64(Classic(tt.x, tt.y))
		if math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("Classic(%v, %v) = %.7f, want %.7f", tt.x, tt.y, got, tt.want)
		}
	}
}
