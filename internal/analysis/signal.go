package analysis

import (
	"math"

	"github.com/san-kum/wavelines/internal/displace"
)

// Profile samples the vertical offset at x over ticks frames, advancing the
// clock by step exactly as the pacer does.
func Profile(w displace.Wave, x float32, ticks int, step float32) []float64 {
	if ticks <= 0 {
		return nil
	}
	out := make([]float64, ticks)
	var t float32
	for i := range out {
		t += step
		out[i] = float64(w.Offset(x, displace.Uniforms{T: t}))
	}
	return out
}

type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	RMS  float64 `json:"rms"`
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Min: data[0], Max: data[0]}
	var sum, sq float64
	for _, v := range data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
		sq += v * v
	}
	n := float64(len(data))
	s.Mean = sum / n
	s.RMS = math.Sqrt(sq / n)
	return s
}
