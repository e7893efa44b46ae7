package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavelines/internal/compute"
	"github.com/san-kum/wavelines/internal/config"
	"github.com/san-kum/wavelines/internal/displace"
	"github.com/san-kum/wavelines/internal/geom"
	"github.com/san-kum/wavelines/internal/metrics"
	"github.com/san-kum/wavelines/internal/pacer"
	"github.com/san-kum/wavelines/internal/render"
)

const (
	width          = 80
	height         = 24
	signalCapacity = 120
)

type TickMsg time.Time

// Model drives the pacer from bubbletea tick messages. Each tick is
// scheduled at the instant the pacer hinted.
type Model struct {
	pacer    *pacer.Pacer
	orch     *render.Orchestrator
	backend  *CanvasBackend
	frame    pacer.FrameFunc
	policy   displace.Wave
	lateness *metrics.Lateness
	segments int

	next     time.Time
	running  bool
	showHelp bool
	theme    Theme
	signal   []float64
	err      error
}

func NewModel(cfg *config.Config, styles <-chan render.Style) (Model, error) {
	policy := cfg.Policy()
	backend := NewCanvasBackend(width, height, cfg.Window.Height, policy)
	orch, err := render.New(backend, geom.Generate(cfg.GeomLayout()), cfg.Style())
	if err != nil {
		return Model{}, err
	}
	lateness := metrics.NewLateness()
	return Model{
		pacer: pacer.New(
			pacer.WithInterval(cfg.Interval()),
			pacer.WithStep(cfg.Timing.Step),
			pacer.WithMetrics(lateness),
		),
		orch:     orch,
		backend:  backend,
		frame:    orch.Restyling(styles),
		policy:   policy,
		lateness: lateness,
		segments: cfg.Layout.Segments,
		running:  true,
		theme:    CurrentTheme,
		signal:   make([]float64, 0, signalCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(m.pacer.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) schedule() tea.Cmd {
	d := time.Until(m.next)
	if d < 0 || !m.running {
		d = m.pacer.Interval()
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles keys and advances the animation on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.running {
			return m, m.schedule()
		}
		if err := m.pacer.Tick(func(t time.Time) { m.next = t }, m.frame); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.sample()
		return m, m.schedule()
	}
	return m, nil
}

// sample records the wave offset at the center of the screen.
func (m *Model) sample() {
	st := m.pacer.State()
	dy := m.policy.Offset(0, displace.Uniforms{T: st.T})
	if len(m.signal) == signalCapacity {
		m.signal = append(m.signal[:0], m.signal[1:]...)
	}
	m.signal = append(m.signal, float64(dy))
}

func (m Model) Err() error { return m.err }

func (m Model) View() string {
	st := m.pacer.State()
	canvasView := canvasStyle.Render(m.backend.Canvas.Render(m.theme))

	var s strings.Builder
	s.WriteString(headerStyle.Render("WAVELINES") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}
	if len(m.signal) > 1 {
		chart := asciigraph.Plot(m.signal, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("dy @ x=0"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", st.T)) + "\n")
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.orch.Frames())) + "\n")
	s.WriteString(labelStyle.Render("Segments") + valueStyle.Render(fmt.Sprintf("%d", m.segments)) + "\n")
	s.WriteString(labelStyle.Render("Late") + valueStyle.Render(fmt.Sprintf("%.2fms", m.lateness.Value())) + "\n")
	s.WriteString(labelStyle.Render("Shading") + valueStyle.Render(compute.GetBackend().Name()) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n")
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause T:Theme Q:Quit ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════╗
║        KEYBOARD SHORTCUTS        ║
╠══════════════════════════════════╣
║  Space    - Pause/Resume         ║
║  T        - Cycle themes         ║
║  Q/Esc    - Quit                 ║
║  ?        - Toggle this help     ║
╚══════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run animates in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, cfg *config.Config, styles <-chan render.Style) error {
	m, err := NewModel(cfg, styles)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() == nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
