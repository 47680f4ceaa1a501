package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/balls"
	"github.com/vovakirdan/pongpong/internal/config"
	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/games/pong"
	"github.com/vovakirdan/pongpong/internal/input"
	"github.com/vovakirdan/pongpong/internal/loop"
	"github.com/vovakirdan/pongpong/internal/storage"
)

// statusTTL is how long a settings change notice stays on screen.
const statusTTL = 2 * time.Second

// HUD text size and placement.
const (
	hudSize   = 13
	hudMargin = 8
)

var (
	hintColor   = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	bannerColor = color.RGBA{0xfb, 0xbf, 0x24, 0xff}
	shadeColor  = color.NRGBA{0, 0, 0, 0xb0}
)

// paddleKeys maps window keys to the keys the sampler understands.
var paddleKeys = map[ebiten.Key]input.Key{
	ebiten.KeyW:         input.KeyW,
	ebiten.KeyS:         input.KeyS,
	ebiten.KeyArrowUp:   input.KeyArrowUp,
	ebiten.KeyArrowDown: input.KeyArrowDown,
}

// Deps are the collaborators of the window. Every field is optional.
type Deps struct {
	Settings *config.Store
	Balls    *balls.Registry
	Points   *storage.PointLog
	Audio    audio.Player
	Logger   *log.Logger
}

// Game implements ebiten.Game around a pong session.
type Game struct {
	session  *pong.Session
	sched    *loop.Manual
	frame    time.Duration
	surface  *Surface
	settings *config.Store
	balls    *balls.Registry
	points   *storage.PointLog
	logger   *log.Logger
	cfg      core.RuntimeConfig

	touchIDs []ebiten.TouchID
	touches  map[ebiten.TouchID]struct{}
	focused  bool
	status   string
	statusAt time.Time
}

// NewGame creates the window game. The session starts on the first Update.
func NewGame(cfg core.RuntimeConfig, deps Deps) *Game {
	def := core.DefaultConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if deps.Settings == nil {
		deps.Settings = config.NewStore(config.DefaultSettings())
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}

	sched := loop.NewManual()
	surface := NewSurface()

	opts := pong.Options{
		Runtime:   cfg,
		Scheduler: sched,
		Settings:  deps.Settings,
		Audio:     deps.Audio,
		Surface:   surface,
		Logger:    deps.Logger,
	}
	if deps.Balls != nil {
		opts.Balls = deps.Balls
	}
	if deps.Points != nil {
		opts.Points = deps.Points
	}

	return &Game{
		session:  pong.NewSession(opts),
		sched:    sched,
		frame:    loop.FrameDuration(cfg.TickRate),
		surface:  surface,
		settings: deps.Settings,
		balls:    deps.Balls,
		points:   deps.Points,
		logger:   deps.Logger,
		cfg:      cfg,
		touches:  make(map[ebiten.TouchID]struct{}),
		focused:  true,
	}
}

// Update implements ebiten.Game. It runs once per tick at the configured TPS.
func (g *Game) Update() error {
	if g.session.Lifecycle() == pong.LifecycleIdle {
		g.session.Enter()
	}

	g.trackFocus()
	g.readPaddles()
	g.readTouches()
	if quit := g.readHotkeys(); quit {
		g.session.Exit()
		return ebiten.Termination
	}

	g.sched.Tick(g.frame)
	return nil
}

// trackFocus releases everything held when the window loses focus, since
// key-up events are not delivered to an unfocused window.
func (g *Game) trackFocus() {
	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.session.Input().ReleaseAll()
		clear(g.touches)
	}
	if !g.focused && focused {
		g.pressHeld(ebiten.IsKeyPressed)
	}
	g.focused = focused
}

func (g *Game) readPaddles() {
	sampler := g.session.Input()
	for ek, k := range paddleKeys {
		if inpututil.IsKeyJustPressed(ek) {
			sampler.KeyDown(k)
		}
		if inpututil.IsKeyJustReleased(ek) {
			sampler.KeyUp(k)
		}
	}
}

// readTouches feeds touch starts and ends to the sampler. Layout keeps the
// screen at the logical size, so touch positions are logical coordinates.
func (g *Game) readTouches() {
	sampler := g.session.Input()

	for id := range g.touches {
		if inpututil.IsTouchJustReleased(id) {
			sampler.TouchEnd(int(id))
			delete(g.touches, id)
		}
	}

	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		sampler.TouchStart(int(id), float64(x), float64(y), g.cfg.Width, g.cfg.Height)
		g.touches[id] = struct{}{}
	}
}

// readHotkeys handles control and settings keys. It reports whether the
// player asked to quit.
func (g *Game) readHotkeys() bool {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	switch {
	case pressed(ebiten.KeyQ):
		return true
	case pressed(ebiten.KeyP, ebiten.KeySpace, ebiten.KeyEscape):
		g.togglePause(ebiten.IsKeyPressed)
	case pressed(ebiten.KeyR):
		g.restart(ebiten.IsKeyPressed)
	case pressed(ebiten.KeyC):
		next := config.NextPaddleColor(g.settings.Get().PaddleColor)
		g.settings.Update(func(s *config.Settings) { s.PaddleColor = next.Value })
		g.flash("Paddle color: " + next.Name)
	case pressed(ebiten.KeyG):
		s := g.settings.Update(func(s *config.Settings) { s.BallGlow = !s.BallGlow })
		g.flash("Ball glow: " + onOff(s.BallGlow))
	case pressed(ebiten.KeyM):
		s := g.settings.Update(func(s *config.Settings) { s.SoundEnabled = !s.SoundEnabled })
		g.flash("Sound: " + onOff(s.SoundEnabled))
	case pressed(ebiten.KeyX):
		s := g.settings.Update(func(s *config.Settings) { s.DisintegrationMode = !s.DisintegrationMode })
		g.flash("Disintegration mode: " + onOff(s.DisintegrationMode))
	case pressed(ebiten.KeyD):
		s := g.settings.Update(func(s *config.Settings) { s.DisintegrationSpeed = s.DisintegrationSpeed.Next() })
		g.flash(fmt.Sprintf("Disintegration speed: %s", s.DisintegrationSpeed))
	case pressed(ebiten.KeyB):
		if g.balls != nil {
			g.flash("Ball: " + g.balls.Cycle())
		}
	}
	return false
}

// togglePause pauses or resumes. Pausing drops every held input, so keys
// still down on resume are pressed again.
func (g *Game) togglePause(isPressed func(ebiten.Key) bool) {
	g.session.TogglePause()
	clear(g.touches)
	if g.session.Lifecycle() == pong.LifecycleRunning {
		g.pressHeld(isPressed)
	}
}

// restart clears the point log and starts a new match.
func (g *Game) restart(isPressed func(ebiten.Key) bool) {
	if g.points != nil {
		if err := g.points.Clear(); err != nil {
			g.logger.Warn("Failed to clear point log", "error", err)
		}
	}
	g.session.Restart()
	g.pressHeld(isPressed)
}

// pressHeld presses the paddle keys that are physically down.
func (g *Game) pressHeld(isPressed func(ebiten.Key) bool) {
	sampler := g.session.Input()
	for ek, k := range paddleKeys {
		if isPressed(ek) {
			sampler.KeyDown(k)
		}
	}
}

func (g *Game) flash(text string) {
	g.status = text
	g.statusAt = time.Now()
	g.logger.Debug("Setting changed", "status", text)
}

// Draw implements ebiten.Game. The frame is rendered from the current state
// every time, then the HUD is drawn on top.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Bind(screen)
	defer g.surface.Bind(nil)

	g.session.Draw()
	g.drawHUD()
}

func (g *Game) drawHUD() {
	w, h := g.cfg.Width, g.cfg.Height

	if g.session.Lifecycle() == pong.LifecyclePaused {
		vector.FillRect(g.surface.dst, 0, 0, float32(w), float32(h), shadeColor, false)
		g.surface.text("Game Paused", w/2, h/2, 32, core.ColorWhite, text.AlignCenter)
		g.surface.text("Press P to resume", w/2, h/2+32, hudSize, core.ColorCyan, text.AlignCenter)
	}

	y := h - hudMargin
	g.surface.text("Left: W/S keys | Right: Up/Down keys", hudMargin, y, hudSize, hintColor, text.AlignStart)

	switch {
	case g.status != "" && time.Since(g.statusAt) < statusTTL:
		g.surface.text(g.status, w-hudMargin, y, hudSize, core.ColorCyan, text.AlignEnd)
	case g.settings.Get().DisintegrationMode:
		g.surface.text("Disintegration Mode: Ball degrades with each hit!", w-hudMargin, y, hudSize, bannerColor, text.AlignEnd)
	}
}

// Layout implements ebiten.Game. The window is letterboxed onto the
// logical surface.
func (g *Game) Layout(int, int) (int, int) {
	return int(g.cfg.Width), int(g.cfg.Height)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Run opens the game window and blocks until it is closed.
func Run(cfg core.RuntimeConfig, deps Deps) error {
	game := NewGame(cfg, deps)

	ebiten.SetWindowSize(int(game.cfg.Width), int(game.cfg.Height))
	ebiten.SetWindowTitle("Pong")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(game.cfg.TickRate)

	err := ebiten.RunGame(game)
	game.session.Exit()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
