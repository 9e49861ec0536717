package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mrz1836/cutline/internal/session"
)

// MonitorConfig configures the interactive monitor.
type MonitorConfig struct {
	// FPS is the playback frame rate; each playback tick advances 1/FPS.
	FPS int
	// Interval is the wall-clock time between playback ticks. Zero means 1/FPS.
	Interval time.Duration
	// PixelsPerCell is how many timeline pixels one terminal column shows.
	PixelsPerCell float64
	// Title is shown above the timeline.
	Title string
	// Logger receives monitor events.
	Logger zerolog.Logger
}

// DefaultPixelsPerCell gives a 0.2 s column at the default zoom.
const DefaultPixelsPerCell = 10.0

// PlaybackTickMsg advances playback by one frame. Gen ties it to one play
// run; ticks from an earlier run are dropped, so pausing cancels every
// tick already scheduled.
type PlaybackTickMsg struct {
	Gen int
	At  time.Time
}

// MonitorModel is the Bubble Tea model for the timeline monitor.
// It implements tea.Model (Init, Update, View).
type MonitorModel struct {
	session  *session.Session
	renderer *Renderer
	keys     KeyMap
	help     help.Model
	config   MonitorConfig
	interval time.Duration
	dt       float64

	width, height int
	gen           int
	frame         session.Frame
	err           error
	quitting      bool
	logger        zerolog.Logger
}

// NewMonitorModel creates a monitor over sess.
func NewMonitorModel(sess *session.Session, cfg MonitorConfig) *MonitorModel {
	fps := sess.Snapshot().FPS
	if cfg.FPS <= 0 {
		cfg.FPS = fps
	}
	if cfg.PixelsPerCell <= 0 {
		cfg.PixelsPerCell = DefaultPixelsPerCell
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second / time.Duration(cfg.FPS)
	}

	m := &MonitorModel{
		session:  sess,
		renderer: NewRenderer(cfg.FPS),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		config:   cfg,
		interval: interval,
		dt:       1 / float64(cfg.FPS),
		width:    100,
		height:   24,
		logger:   cfg.Logger.With().Str("component", "monitor").Logger(),
	}
	m.resize(m.width, m.height)
	return m
}

// Init draws the first frame.
func (m *MonitorModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (m *MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case PlaybackTickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		st, err := m.session.Tick(m.dt)
		if err != nil {
			m.err = err
			m.gen++
			return m, nil
		}
		m.follow()
		m.refresh()
		if !st.Playing {
			m.gen++
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *MonitorModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.session
	k := m.keys
	var err error

	switch {
	case key.Matches(msg, k.Quit):
		s.Pause()
		m.gen++
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, k.Play):
		st := s.TogglePlay()
		m.gen++
		m.refresh()
		if st.Playing {
			return m.tick()
		}
		return nil
	case key.Matches(msg, k.StepBack):
		s.Step(-1)
	case key.Matches(msg, k.StepForward):
		s.Step(1)
	case key.Matches(msg, k.ZoomIn):
		_, err = s.ZoomIn()
	case key.Matches(msg, k.ZoomOut):
		_, err = s.ZoomOut()
	case key.Matches(msg, k.ResetZoom):
		_, err = s.ResetZoom()
	case key.Matches(msg, k.ScrollLeft):
		s.ScrollBy(-m.frame.ViewportWidth / 4)
	case key.Matches(msg, k.ScrollRight):
		s.ScrollBy(m.frame.ViewportWidth / 4)
	case key.Matches(msg, k.Home):
		s.Seek(0)
		s.ScrollTo(0)
	case key.Matches(msg, k.End):
		s.Seek(s.Snapshot().Timeline.Project.Duration)
		m.follow()
	case key.Matches(msg, k.Snap):
		s.SetSnapping(!s.Snapshot().Snapping)
	case key.Matches(msg, k.Magnet):
		s.SetMagnet(!s.Snapshot().Magnet)
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		return nil
	}

	m.err = err
	m.refresh()
	return nil
}

// follow pages the viewport when the playhead leaves it.
func (m *MonitorModel) follow() {
	f, err := m.session.Frame()
	if err != nil || f.Playhead.Visible {
		return
	}
	m.session.ScrollTo(f.Playhead.ContentPx - f.ViewportWidth/10)
}

func (m *MonitorModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	cols := m.renderer.CanvasCols(width)
	if err := m.session.SetViewportWidth(float64(cols) * m.config.PixelsPerCell); err != nil {
		m.err = err
	}
}

func (m *MonitorModel) refresh() {
	f, err := m.session.Frame()
	if err != nil {
		m.err = err
		return
	}
	m.frame = f
}

func (m *MonitorModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return PlaybackTickMsg{Gen: gen, At: t}
	})
}

// View renders the current frame.
func (m *MonitorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(StyleBold.Render(m.config.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderer.Frame(m.frame, m.width))
	b.WriteString("\n")

	snap := m.session.Snapshot()
	b.WriteString(StyleDim.Render(fmt.Sprintf("snap %s  magnet %s", onOff(snap.Snapping), onOff(snap.Magnet))))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(NewOutputStyles().Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Frame returns the last rendered frame.
func (m *MonitorModel) Frame() session.Frame {
	return m.frame
}

// IsQuitting returns true if the model is in quitting state.
func (m *MonitorModel) IsQuitting() bool {
	return m.quitting
}

// Error returns the last error.
func (m *MonitorModel) Error() error {
	return m.err
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// RunMonitor runs the monitor full-screen until the user quits or ctx ends.
func RunMonitor(ctx context.Context, sess *session.Session, cfg MonitorConfig) error {
	p := tea.NewProgram(NewMonitorModel(sess, cfg), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
