package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"dense": {
		Layout: LayoutConfig{Padding: 0.1, Segments: 240},
		Stroke: StrokeConfig{Center: 4.0, Lines: 0.5},
		Timing: TimingConfig{Step: 0.01, FPS: 60},
		Noise:  NoiseConfig{Factor: 0.5},
		Window: WindowConfig{Width: 1000, Height: 1000, Title: "wavelines: dense"},
	},
	"sparse": {
		Layout: LayoutConfig{Padding: 0.1, Segments: 24},
		Stroke: StrokeConfig{Center: 6.0, Lines: 1.5},
		Timing: TimingConfig{Step: 0.01, FPS: 60},
		Noise:  NoiseConfig{Factor: 0.5},
		Window: WindowConfig{Width: 800, Height: 800, Title: "wavelines: sparse"},
	},
	"bold": {
		Layout: LayoutConfig{Padding: 0.15, Segments: 60},
		Stroke: StrokeConfig{Center: 10.0, Lines: 3.0},
		Timing: TimingConfig{Step: 0.02, FPS: 60},
		Noise:  NoiseConfig{Factor: 0.8},
		Window: WindowConfig{Width: 800, Height: 800, Title: "wavelines: bold"},
	},
	"tight": {
		Layout: LayoutConfig{Padding: 0.02, Segments: 100},
		Stroke: StrokeConfig{Center: 5.0, Lines: 1.0},
		Timing: TimingConfig{Step: 0.005, FPS: 30},
		Noise:  NoiseConfig{Factor: 0.25},
		Window: WindowConfig{Width: 600, Height: 600, Title: "wavelines: tight"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
