package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/san-kum/wavelines/internal/render"
)

// Palette covers the three scene colors plus grays for antialiased edges.
var Palette = func() color.Palette {
	p := color.Palette{render.Black, render.White, render.DarkRed}
	for i := 1; i <= 8; i++ {
		v := uint8(i * 28)
		p = append(p, color.RGBA{v, v, v, 255})
	}
	for i := 1; i <= 4; i++ {
		v := uint8(i * 15)
		p = append(p, color.RGBA{v, 0, 0, 255})
	}
	return p
}()

// Paletted converts img to the export palette, nearest color per pixel.
func Paletted(img image.Image) *image.Paletted {
	dst := image.NewPaletted(img.Bounds(), Palette)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

// WriteGIF encodes frames as a looping animation. delay is in 1/100 s.
func WriteGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// GIFDelay converts a frame interval in seconds into GIF delay units.
func GIFDelay(seconds float64) int {
	d := int(seconds*100 + 0.5)
	if d < 2 {
		// Most decoders clamp anything shorter.
		d = 2
	}
	return d
}
