// Package analysis characterizes the displacement signal: its value over
// time at a fixed x, its power spectrum, and its phase portrait.
//
//	signal := analysis.Profile(displace.NewWave(), 0, 1024, 0.01)
//	ps := analysis.PowerSpectrum(signal)
//	freq, _ := analysis.Dominant(ps, 60)
package analysis
