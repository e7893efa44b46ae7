package analysis

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// Report is a sampled displacement signal with its derived statistics.
type Report struct {
	X        float64   `json:"x"`
	Step     float64   `json:"step"`
	FPS      float64   `json:"fps"`
	Ticks    int       `json:"ticks"`
	Summary  Summary   `json:"summary"`
	Dominant float64   `json:"dominant_hz"`
	Power    float64   `json:"dominant_power"`
	Period   float64   `json:"period_s,omitempty"`
	Samples  []float64 `json:"samples"`
}

// NewReport derives statistics from samples taken once per tick at fps.
func NewReport(samples []float64, x, step, fps float64) *Report {
	r := &Report{
		X:       x,
		Step:    step,
		FPS:     fps,
		Ticks:   len(samples),
		Summary: Summarize(samples),
		Samples: samples,
	}
	if len(samples) == 0 {
		return r
	}
	r.Dominant, r.Power = Dominant(PowerSpectrum(samples), fps)
	if period := MeanPeriod(Crossings(samples, r.Summary.Mean)); period > 0 && fps > 0 {
		r.Period = period / fps
	}
	return r
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per tick: tick, t, dy.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "t", "dy"}); err != nil {
		return err
	}
	var t float32
	for i, v := range r.Samples {
		t += float32(r.Step)
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(float64(t), 'f', 4, 32),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
