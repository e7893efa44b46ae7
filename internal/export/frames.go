package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/san-kum/wavelines/internal/config"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/pacer"
	"github.com/san-kum/wavelines/internal/render"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatGIF Format = "gif"
)

var ErrFormat = errors.New("export: unknown format")

type Options struct {
	Format Format
	// Out is a directory for svg and png, a file for gif.
	Out    string
	Ticks  int
	Every  int
	Width  int
	Height int
}

// Frames animates ticks frames into b as fast as possible. A fake clock
// stands in for wall time, so output depends only on cfg.
func Frames(ctx context.Context, cfg *config.Config, b render.Backend, ticks int) (*render.Orchestrator, error) {
	orch, err := render.New(b, geom.Generate(cfg.GeomLayout()), cfg.Style())
	if err != nil {
		return nil, err
	}
	clock := pacer.NewFakeClock(time.Unix(0, 0))
	src := pacer.Ticks(ticks)
	src.Clock = clock
	p := pacer.New(
		pacer.WithClock(clock),
		pacer.WithInterval(cfg.Interval()),
		pacer.WithStep(cfg.Timing.Step),
	)
	return orch, p.Run(ctx, src, orch.Frame)
}

// Run renders opts.Ticks frames and writes them in opts.Format. It returns
// the paths written.
func Run(ctx context.Context, cfg *config.Config, opts Options) ([]string, error) {
	if opts.Width <= 0 {
		opts.Width = cfg.Window.Width
	}
	if opts.Height <= 0 {
		opts.Height = cfg.Window.Height
	}
	if opts.Every < 1 {
		opts.Every = 1
	}

	var paths []string
	framePath := func(i int, ext string) string {
		return filepath.Join(opts.Out, fmt.Sprintf("frame-%05d.%s", i, ext))
	}

	switch opts.Format {
	case FormatSVG:
		b := NewSVGBackend(opts.Width, opts.Height, cfg.Policy())
		b.Every = opts.Every
		b.OnFrame = func(i int, doc []byte) error {
			path := framePath(i, "svg")
			paths = append(paths, path)
			return SafeWrite(path, func(w io.Writer) error {
				_, err := w.Write(doc)
				return err
			})
		}
		if _, err := Frames(ctx, cfg, b, opts.Ticks); err != nil {
			return paths, err
		}

	case FormatPNG:
		b := NewRasterBackend(opts.Width, opts.Height, cfg.Policy())
		b.Every = opts.Every
		b.OnFrame = func(i int, _ image.Image) error {
			path := framePath(i, "png")
			paths = append(paths, path)
			return SafeWrite(path, b.EncodePNG)
		}
		if _, err := Frames(ctx, cfg, b, opts.Ticks); err != nil {
			return paths, err
		}

	case FormatGIF:
		var frames []*image.Paletted
		b := NewRasterBackend(opts.Width, opts.Height, cfg.Policy())
		b.Every = opts.Every
		b.OnFrame = func(_ int, img image.Image) error {
			frames = append(frames, Paletted(img))
			return nil
		}
		if _, err := Frames(ctx, cfg, b, opts.Ticks); err != nil {
			return nil, err
		}
		delay := GIFDelay(cfg.Interval().Seconds() * float64(opts.Every))
		if err := SafeWrite(opts.Out, func(w io.Writer) error { return WriteGIF(w, frames, delay) }); err != nil {
			return nil, err
		}
		paths = append(paths, opts.Out)

	default:
		return nil, fmt.Errorf("%w: %q (want svg, png or gif)", ErrFormat, opts.Format)
	}

	log.Printf("export: wrote %d %s file(s) from %d ticks", len(paths), opts.Format, opts.Ticks)
	return paths, nil
}
