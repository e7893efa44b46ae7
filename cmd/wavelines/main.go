package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavelines/internal/analysis"
	"github.com/san-kum/wavelines/internal/compute"
	"github.com/san-kum/wavelines/internal/config"
	"github.com/san-kum/wavelines/internal/export"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/gui"
	"github.com/san-kum/wavelines/internal/metrics"
	"github.com/san-kum/wavelines/internal/pacer"
	"github.com/san-kum/wavelines/internal/render"
	"github.com/san-kum/wavelines/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	padding    float64
	segments   int
	fps        int
	debug      bool
	shading    string

	// gui / tui
	hostBackend string
	watch       bool

	// export
	format string
	outDir string
	exportTicks int
	every       int
	width  int
	height int

	// analyze
	analyzeTicks int
	sampleX      float64
	jsonPath string
	csvPath  string

	// bench
	benchTicks int
	realtime   bool

	savePath string
)

var logFile *os.File

// newRootCmd registers the wavelines commands. The root command runs the
// window host when no subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "wavelines",
		Short:             "noise-driven line-art animator",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".wavelines", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&padding, "padding", config.DefaultPadding, "border inset in NDC units")
	pf.IntVar(&segments, "segments", config.DefaultSegments, "number of line segments")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.StringVar(&shading, "shading", "", "shading backend ("+strings.Join(compute.Names(), ", ")+")")
	pf.BoolVar(&debug, "debug", false, "write logs to <data>/logs")

	rootCmd.Flags().StringVar(&hostBackend, "backend", "raylib", "window backend (raylib, ebiten)")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "reload stroke widths when the config file changes")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&hostBackend, "backend", "raylib", "window backend (raylib, ebiten)")
	guiCmd.Flags().BoolVar(&watch, "watch", false, "reload stroke widths when the config file changes")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "animate in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().BoolVar(&watch, "watch", false, "reload stroke widths when the config file changes")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render frames to svg, png or gif",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&format, "format", "svg", "output format (svg, png, gif)")
	exportCmd.Flags().StringVar(&outDir, "out", "", "output directory, or file for gif")
	exportCmd.Flags().IntVar(&exportTicks, "ticks", 120, "number of frames to render")
	exportCmd.Flags().IntVar(&every, "every", 1, "keep every nth frame")
	exportCmd.Flags().IntVar(&width, "width", 0, "frame width (default: window width)")
	exportCmd.Flags().IntVar(&height, "height", 0, "frame height (default: window height)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "plot the displacement signal and its spectrum",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Float64Var(&sampleX, "x", 0, "sample position in NDC")
	analyzeCmd.Flags().IntVar(&analyzeTicks, "ticks", 1024, "number of ticks to sample")
	analyzeCmd.Flags().StringVar(&jsonPath, "json", "", "write the report as json (- for stdout)")
	analyzeCmd.Flags().StringVar(&csvPath, "csv", "", "write the samples as csv (- for stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 2000, "frames per backend")
	benchCmd.Flags().BoolVar(&realtime, "realtime", false, "pace ticks with a real timer and report lateness")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  printConfig,
	}
	configCmd.Flags().StringVar(&savePath, "save", "", "also write the configuration to this file")

	rootCmd.AddCommand(guiCmd, tuiCmd, exportCmd, analyzeCmd, benchCmd, presetsCmd, configCmd)
	return rootCmd
}

// main exits with status 1 if a command fails.
func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	f, err := setupLogging(debug)
	if err != nil {
		return err
	}
	logFile = f
	if shading == "" {
		compute.SetBackend(compute.AutoSelectBackend())
		return nil
	}
	b, err := compute.Lookup(shading)
	if err != nil {
		return err
	}
	compute.SetBackend(b)
	return nil
}

// setupLogging sends the standard logger to <data>/logs/wavelines.log when
// debug is set and discards it otherwise. The returned file is nil when
// logging is off.
func setupLogging(debug bool) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	dir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "wavelines.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (base, cfg *config.Config, err error) {
	base = config.DefaultConfig()
	if preset != "" {
		base = config.GetPreset(preset)
		if base == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	cfg = base.Clone()
	if configFile != "" {
		cfg, err = config.LoadOver(configFile, base)
		if err != nil {
			return nil, nil, fmt.Errorf("load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("padding") {
		cfg.Layout.Padding = float32(padding)
	}
	if flags.Changed("segments") {
		cfg.Layout.Segments = segments
	}
	if flags.Changed("fps") {
		cfg.Timing.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return base, cfg, nil
}

// styleFeed starts the config watcher when --watch is set. The returned
// channel is nil otherwise.
func styleFeed(ctx context.Context, base *config.Config) (<-chan render.Style, error) {
	if !watch {
		return nil, nil
	}
	if configFile == "" {
		return nil, errors.New("--watch needs --config")
	}
	styles := make(chan render.Style, 4)
	go func() {
		err := config.Watch(ctx, configFile, base, func(c *config.Config) {
			select {
			case styles <- c.Style():
			default:
				log.Printf("config: style update dropped, frame loop busy")
			}
		})
		if err != nil {
			log.Printf("config: watch stopped: %v", err)
		}
	}()
	return styles, nil
}

// quiet turns an interrupt into a clean exit.
func quiet(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	base, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	styles, err := styleFeed(ctx, base)
	if err != nil {
		return err
	}

	log.Printf("gui: backend=%s segments=%d fps=%d", hostBackend, cfg.Layout.Segments, cfg.Timing.FPS)
	switch hostBackend {
	case "raylib":
		return quiet(gui.Run(ctx, cfg, styles))
	case "ebiten":
		return quiet(gui.RunEbiten(ctx, cfg, styles))
	}
	return fmt.Errorf("unknown window backend: %s (available: raylib, ebiten)", hostBackend)
}

func runTUI(cmd *cobra.Command, args []string) error {
	base, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	styles, err := styleFeed(cmd.Context(), base)
	if err != nil {
		return err
	}
	return quiet(viz.Run(cmd.Context(), cfg, styles))
}

func runExport(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := export.Options{
		Format: export.Format(format),
		Out:    outDir,
		Ticks:  exportTicks,
		Every:  every,
		Width:  width,
		Height: height,
	}
	if opts.Out == "" {
		opts.Out = filepath.Join(dataDir, "frames")
		if opts.Format == export.FormatGIF {
			opts.Out = filepath.Join(dataDir, "wavelines.gif")
		}
	}

	start := time.Now()
	paths, err := export.Run(cmd.Context(), cfg, opts)
	if err != nil {
		return quiet(err)
	}
	fmt.Printf("wrote %d file(s) in %v\n", len(paths), time.Since(start).Round(time.Millisecond))
	if len(paths) > 0 {
		fmt.Printf("  %s\n", paths[0])
		if len(paths) > 1 {
			fmt.Printf("  ...\n  %s\n", paths[len(paths)-1])
		}
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if analyzeTicks < 2 {
		return fmt.Errorf("need at least 2 ticks, got %d", analyzeTicks)
	}

	data := analysis.Profile(cfg.Policy(), float32(sampleX), analyzeTicks, cfg.Timing.Step)
	rate := float64(cfg.Timing.FPS)
	report := analysis.NewReport(data, sampleX, float64(cfg.Timing.Step), rate)

	if jsonPath != "" || csvPath != "" {
		if err := writeReport(jsonPath, report.WriteJSON); err != nil {
			return err
		}
		return writeReport(csvPath, report.WriteCSV)
	}

	fmt.Printf("displacement at x=%.3f over %d ticks (%.1fs)\n\n", sampleX, analyzeTicks, float64(analyzeTicks)/rate)

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("dy"),
	))
	fmt.Println()

	ps := analysis.PowerSpectrum(data)
	plotData := ps
	if len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	))
	fmt.Println()

	s := report.Summary
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "min\t%.4f\n", s.Min)
	fmt.Fprintf(w, "max\t%.4f\n", s.Max)
	fmt.Fprintf(w, "mean\t%.4f\n", s.Mean)
	fmt.Fprintf(w, "rms\t%.4f\n", s.RMS)
	fmt.Fprintf(w, "dominant\t%.3f hz (power %.2f)\n", report.Dominant, report.Power)
	if report.Period > 0 {
		fmt.Fprintf(w, "period\t%.3f s\n", report.Period)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	portrait := analysis.GeneratePhasePortrait(data, 1/rate)
	fmt.Println("phase portrait (dy vs d/dt)")
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 20))
	return nil
}

// writeReport sends write to path, or stdout for "-". An empty path is
// skipped.
func writeReport(path string, write func(io.Writer) error) error {
	switch path {
	case "":
		return nil
	case "-":
		return write(os.Stdout)
	}
	return export.SafeWrite(path, write)
}

func runBench(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if realtime {
		return benchRealtime(cmd.Context(), cfg)
	}

	fmt.Printf("benchmarking %d frames, %d segments\n\n", benchTicks, cfg.Layout.Segments)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHADING\tFRAMES\tTIME\tFRAME\tFRAMES/SEC")

	for _, name := range compute.Names() {
		shader, err := compute.Lookup(name)
		if err != nil {
			return err
		}
		null := render.NewNull(cfg.Policy())
		null.Sets().UseShader(shader)

		start := time.Now()
		orch, err := export.Frames(cmd.Context(), cfg, null, benchTicks)
		shader.Cleanup()
		if err != nil {
			return quiet(err)
		}
		elapsed := time.Since(start)

		frames := orch.Frames()
		perFrame := time.Duration(0)
		if frames > 0 {
			perFrame = elapsed / time.Duration(frames)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%.0f\n",
			name, frames, elapsed.Round(time.Microsecond), perFrame, float64(frames)/elapsed.Seconds())
	}
	return w.Flush()
}

// benchRealtime paces ticks against the wall clock and reports how closely
// deliveries track the scheduled wake times.
func benchRealtime(ctx context.Context, cfg *config.Config) error {
	null := render.NewNull(cfg.Policy())
	orch, err := render.New(null, geom.Generate(cfg.GeomLayout()), cfg.Style())
	if err != nil {
		return err
	}

	lateness, missed, frameTime := metrics.NewLateness(), metrics.NewMissed(), metrics.NewFrameTime()
	p := pacer.New(
		pacer.WithInterval(cfg.Interval()),
		pacer.WithStep(cfg.Timing.Step),
		pacer.WithMetrics(lateness, missed, frameTime),
	)

	src := pacer.NewTimerSource()
	frame := func(s *pacer.State) error {
		if err := orch.Frame(s); err != nil {
			return err
		}
		if orch.Frames() >= uint64(benchTicks) {
			src.Close()
		}
		return nil
	}

	fmt.Printf("pacing %d ticks at %d fps (~%v)\n\n", benchTicks, cfg.Timing.FPS, cfg.Interval()*time.Duration(benchTicks))
	start := time.Now()
	if err := quiet(p.Run(ctx, src, frame)); err != nil {
		return err
	}
	elapsed := time.Since(start)

	results := metrics.Collect(lateness, missed, frameTime)
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ticks\t%d\n", p.State().Ticks)
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "t\t%.4f\n", p.State().T)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, results[name])
	}
	fmt.Fprintf(w, "frame_max\t%v\n", frameTime.Max())
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSEGMENTS\tPADDING\tCENTER\tLINES\tSTEP\tFPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.1f\t%.1f\t%.3f\t%d\n",
			name, p.Layout.Segments, p.Layout.Padding, p.Stroke.Center, p.Stroke.Lines, p.Timing.Step, p.Timing.FPS)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	if savePath != "" {
		if err := config.Save(savePath, cfg); err != nil {
			return err
		}
		fmt.Printf("# saved to %s\n", savePath)
	}
	return nil
}
