package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/balls"
	"github.com/vovakirdan/pongpong/internal/config"
	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/games/pong"
	"github.com/vovakirdan/pongpong/internal/input"
	"github.com/vovakirdan/pongpong/internal/storage"
)

// Terminals only report key presses (repeated while held), never releases.
// A press holds its key for initialHold; every repeat extends it by repeatHold.
const (
	initialHold = 250 * time.Millisecond
	repeatHold  = 120 * time.Millisecond
)

// footerRows are the rows below the game surface: hint line and help line.
const footerRows = 2

// statusTTL is how long a settings change notice stays in the footer.
const statusTTL = 2 * time.Second

// Deps are the collaborators of the game view. Every field is optional.
type Deps struct {
	Settings *config.Store
	Balls    *balls.Registry
	Points   *storage.PointLog
	Audio    audio.Player
	Logger   *log.Logger
}

// Model is the Bubble Tea model for one game view.
type Model struct {
	session  *pong.Session
	sched    *TeaScheduler
	screen   *core.Screen
	surface  *CellSurface
	settings *config.Store
	balls    *balls.Registry
	points   *storage.PointLog
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	history  History
	held     map[input.Key]time.Time // key -> release time
	width    int
	height   int
	status   string
	statusAt time.Time
	quitting bool
}

// NewModel creates the game view for a width x height terminal.
func NewModel(cfg core.RuntimeConfig, deps Deps, width, height int) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if deps.Settings == nil {
		deps.Settings = config.NewStore(config.DefaultSettings())
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	screen := core.NewScreen(max(width, 1), max(height-footerRows, 1))
	surface := NewCellSurface(screen, cfg.Width, cfg.Height)
	sched := NewTeaScheduler(cfg.TickRate)

	opts := pong.Options{
		Runtime:   cfg,
		Scheduler: sched,
		Settings:  deps.Settings,
		Audio:     deps.Audio,
		Surface:   surface,
		Logger:    deps.Logger,
	}
	// Typed nils must not reach the session's interfaces.
	if deps.Balls != nil {
		opts.Balls = deps.Balls
	}
	var source PointSource
	if deps.Points != nil {
		opts.Points = deps.Points
		source = deps.Points
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		session:  pong.NewSession(opts),
		sched:    sched,
		screen:   screen,
		surface:  surface,
		settings: deps.Settings,
		balls:    deps.Balls,
		points:   deps.Points,
		logger:   deps.Logger,
		keys:     DefaultKeyMap(),
		help:     h,
		history:  NewHistory(source),
		held:     make(map[input.Key]time.Time),
		width:    width,
		height:   height,
	}
}

// Session exposes the underlying game session.
func (m Model) Session() *pong.Session {
	return m.session
}

// Init enters the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.session.Enter()
	return m.sched.Cmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.releaseExpired(msg.Time)
		return m, m.sched.Handle(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if k, ok := m.keys.PaddleKey(msg); ok {
		m.press(k, now)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Exit()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.session.TogglePause()
		clear(m.held)
		if m.session.Lifecycle() == pong.LifecyclePaused {
			m.history.Refresh()
		}

	case key.Matches(msg, m.keys.Restart):
		if m.points != nil {
			if err := m.points.Clear(); err != nil {
				m.logger.Warn("Failed to clear point log", "error", err)
			}
		}
		m.session.Restart()

	case key.Matches(msg, m.keys.Color):
		next := config.NextPaddleColor(m.settings.Get().PaddleColor)
		m.settings.Update(func(s *config.Settings) { s.PaddleColor = next.Value })
		m = m.flash(now, "Paddle color: "+next.Name)

	case key.Matches(msg, m.keys.Glow):
		s := m.settings.Update(func(s *config.Settings) { s.BallGlow = !s.BallGlow })
		m = m.flash(now, "Ball glow: "+onOff(s.BallGlow))

	case key.Matches(msg, m.keys.Sound):
		s := m.settings.Update(func(s *config.Settings) { s.SoundEnabled = !s.SoundEnabled })
		m = m.flash(now, "Sound: "+onOff(s.SoundEnabled))

	case key.Matches(msg, m.keys.Disintegration):
		s := m.settings.Update(func(s *config.Settings) { s.DisintegrationMode = !s.DisintegrationMode })
		m = m.flash(now, "Disintegration mode: "+onOff(s.DisintegrationMode))

	case key.Matches(msg, m.keys.Speed):
		s := m.settings.Update(func(s *config.Settings) { s.DisintegrationSpeed = s.DisintegrationSpeed.Next() })
		m = m.flash(now, fmt.Sprintf("Disintegration speed: %s", s.DisintegrationSpeed))

	case key.Matches(msg, m.keys.Ball):
		if m.balls != nil {
			m = m.flash(now, "Ball: "+m.balls.Cycle())
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
	}

	// Redraw so changes show even while paused.
	m.session.Draw()
	return m, m.sched.Cmd()
}

// press holds k. The opposite key of the same paddle is released at once,
// since a terminal only repeats the most recent key.
func (m Model) press(k input.Key, now time.Time) {
	sampler := m.session.Input()

	other := opposite(k)
	if _, ok := m.held[other]; ok {
		sampler.KeyUp(other)
		delete(m.held, other)
	}

	if until, ok := m.held[k]; ok && now.Before(until) {
		m.held[k] = now.Add(repeatHold)
		return
	}
	if m.session.Lifecycle() != pong.LifecycleRunning {
		return
	}
	sampler.KeyDown(k)
	m.held[k] = now.Add(initialHold)
}

// releaseExpired lifts every key whose hold window has passed.
func (m Model) releaseExpired(now time.Time) {
	sampler := m.session.Input()
	for k, until := range m.held {
		if !now.Before(until) {
			sampler.KeyUp(k)
			delete(m.held, k)
		}
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.layout()
	m.session.Draw()
	return m, nil
}

// layout sizes the game surface to the space the footer leaves.
func (m Model) layout() {
	rows := footerRows
	if m.help.ShowAll {
		rows = lipgloss.Height(m.help.View(m.keys))
	}
	m.screen.Resize(max(m.width, 1), max(m.height-rows, 1))
}

func (m Model) flash(now time.Time, text string) Model {
	m.status = text
	m.statusAt = now
	return m
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var game string
	if m.session.Lifecycle() == pong.LifecyclePaused {
		game = lipgloss.Place(m.screen.Width(), m.screen.Height(),
			lipgloss.Center, lipgloss.Center, m.history.View(),
			lipgloss.WithWhitespaceBackground(surfaceBackground))
	} else {
		game = RenderScreen(m.screen)
	}

	return lipgloss.JoinVertical(lipgloss.Left, game, m.footer(time.Now()))
}

var (
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff"))
	helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// footer renders the controls hint, the disintegration banner or the latest
// settings notice, and the help bar.
func (m Model) footer(now time.Time) string {
	hint := hintStyle.Render("Left: W/S keys | Right: ↑/↓ keys")

	switch {
	case m.status != "" && now.Sub(m.statusAt) < statusTTL:
		hint += "  " + statusStyle.Render(m.status)
	case m.settings.Get().DisintegrationMode:
		hint += "  " + bannerStyle.Render("Disintegration Mode: Ball degrades with each hit!")
	}

	helpView := m.help.View(m.keys)
	if m.help.ShowAll {
		// Full help replaces the hint line; layout made room for it.
		return helpBarStyle.Render(helpView)
	}
	return hint + "\n" + helpBarStyle.Render(helpView)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Run starts the Bubble Tea program for a local game.
func Run(cfg core.RuntimeConfig, deps Deps, width, height int) error {
	model := NewModel(cfg, deps, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
