package config

import (
	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/noise"
	"github.com/san-kum/wavelines/internal/render"
)

func (c *Config) GeomLayout() geom.Layout {
	return geom.Layout{Padding: c.Layout.Padding, Segments: c.Layout.Segments}
}

func (c *Config) Style() render.Style {
	return render.Style{CenterWidth: c.Stroke.Center, LineWidth: c.Stroke.Lines}
}

func (c *Config) Policy() displace.Wave {
	return displace.Wave{Field: noise.Perlin{}, Factor: c.Noise.Factor}
}
