package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/noise"
)

func sine(n int, cycles float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * cycles * float64(i) / float64(n))
	}
	return out
}

func TestPowerSpectrumPeak(t *testing.T) {
	ps := PowerSpectrum(sine(256, 8))
	if len(ps) != 128 {
		t.Fatalf("len = %d, want 128", len(ps))
	}
	freq, power := Dominant(ps, 256)
	if freq != 8 {
		t.Errorf("dominant frequency = %v, want 8", freq)
	}
	if math.Abs(power-128) > 1e-6 {
		t.Errorf("peak magnitude = %v, want 128", power)
	}
}

func TestPowerSpectrumPads(t *testing.T) {
	if got := len(PowerSpectrum(make([]float64, 100))); got != 64 {
		t.Errorf("len = %d, want 64", got)
	}
	if PowerSpectrum(nil) != nil {
		t.Error("empty input should give nil")
	}
	if f, p := Dominant([]float64{5}, 60); f != 0 || p != 0 {
		t.Error("single bin has no dominant frequency")
	}
}

func TestProfileMatchesPacerClock(t *testing.T) {
	w := displace.NewWave()
	got := Profile(w, 0.3, 5, 0.01)
	var tt float32
	for i, v := range got {
		tt += 0.01
		want := float64(noise.Classic(tt+0.3*0.5, 0))
		if v != want {
			t.Errorf("sample %d = %v, want %v", i, v, want)
		}
	}
	if Profile(w, 0, 0, 0.01) != nil {
		t.Error("zero ticks should give nil")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{-1, 1, 1, -1})
	if s.Min != -1 || s.Max != 1 || s.Mean != 0 || s.RMS != 1 {
		t.Errorf("summary = %+v", s)
	}
	if (Summarize(nil) != Summary{}) {
		t.Error("empty summary should be zero")
	}
}

func TestPhasePortrait(t *testing.T) {
	p := GeneratePhasePortrait([]float64{0, 1, 4, 9}, 1)
	if len(p.Points) != 4 {
		t.Fatalf("points = %d, want 4", len(p.Points))
	}
	wantD := []float64{1, 2, 4, 5}
	for i, pt := range p.Points {
		if pt.Y != wantD[i] {
			t.Errorf("derivative %d = %v, want %v", i, pt.Y, wantD[i])
		}
	}
	if GeneratePhasePortrait([]float64{1}, 1) != nil {
		t.Error("single sample has no portrait")
	}

	art := PhasePortraitToASCII(p, 20, 10)
	if strings.Count(art, "\n") != 10 || !strings.Contains(art, "•") {
		t.Errorf("unexpected ascii portrait:\n%s", art)
	}
}

func TestCrossings(t *testing.T) {
	c := Crossings(sine(400, 4), 0)
	if len(c) != 3 {
		t.Fatalf("crossings = %v, want 3 upward crossings after the first sample", c)
	}
	if p := MeanPeriod(c); math.Abs(p-100) > 1 {
		t.Errorf("mean period = %v, want 100", p)
	}
	if MeanPeriod(c[:1]) != 0 {
		t.Error("one crossing has no period")
	}
}

func TestReport(t *testing.T) {
	r := NewReport(sine(256, 8), 0, 0.01, 256)
	if r.Ticks != 256 || r.Dominant != 8 {
		t.Errorf("ticks=%d dominant=%v, want 256 and 8", r.Ticks, r.Dominant)
	}
	if math.Abs(r.Period-0.125) > 0.005 {
		t.Errorf("period = %v, want 0.125s", r.Period)
	}

	var js strings.Builder
	if err := r.WriteJSON(&js); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"dominant_hz": 8`, `"samples": [`, `"summary": {`} {
		if !strings.Contains(js.String(), key) {
			t.Errorf("json missing %s", key)
		}
	}

	var csv strings.Builder
	if err := r.WriteCSV(&csv); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(csv.String()), "\n")
	if len(lines) != 257 {
		t.Fatalf("csv rows = %d, want header plus 256", len(lines))
	}
	if lines[0] != "tick,t,dy" || !strings.HasPrefix(lines[1], "1,0.0100,") {
		t.Errorf("csv starts %q / %q", lines[0], lines[1])
	}
}

func TestReportEmpty(t *testing.T) {
	r := NewReport(nil, 0, 0.01, 60)
	if r.Ticks != 0 || r.Dominant != 0 || r.Period != 0 {
		t.Errorf("empty report = %+v", r)
	}
}
