package pong

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/config"
	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/input"
	"github.com/vovakirdan/pongpong/internal/loop"
)

// MaxFrameDelta caps the time a single tick may add to the game clock,
// so a stalled frontend does not fire every pending reset at once.
const MaxFrameDelta = 250 * time.Millisecond

// SettingsSource provides the settings snapshot read at the start of each tick.
type SettingsSource interface {
	Get() config.Settings
}

// BallSource resolves the active custom ball. Active returns nil when the
// default ball should be drawn.
type BallSource interface {
	Active() *core.Sprite
}

// PointRecord describes one scored point.
type PointRecord struct {
	Scorer        core.Side
	Score         Score         // Score after the point
	Hits          int           // Paddle hits in the rally
	Disintegrated bool          // Whether the ball was already fully disintegrated
	Clock         time.Duration // Game time of the point
}

// PointRecorder receives every point scored in the session.
type PointRecorder interface {
	RecordPoint(p PointRecord) error
}

// Lifecycle is the state of the session's frame loop.
type Lifecycle int

const (
	LifecycleIdle Lifecycle = iota
	LifecycleRunning
	LifecyclePaused
	LifecycleTornDown
)

// String returns the name of the lifecycle state.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleIdle:
		return "idle"
	case LifecycleRunning:
		return "running"
	case LifecyclePaused:
		return "paused"
	case LifecycleTornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// Options configures a Session. Only Scheduler is required.
type Options struct {
	Runtime   core.RuntimeConfig
	Scheduler loop.Scheduler
	Settings  SettingsSource
	Balls     BallSource
	Audio     audio.Player
	Points    PointRecorder
	Surface   core.Surface
	Logger    *log.Logger
}

// Session owns one game view: the simulation state, the input sampler and
// the frame loop driving them. It is not safe for concurrent use; every
// method must be called from the frontend's event loop.
type Session struct {
	state     State
	sampler   *input.Sampler
	lifecycle Lifecycle

	scheduler loop.Scheduler
	settings  SettingsSource
	balls     BallSource
	audio     audio.Player
	points    PointRecorder
	surface   core.Surface
	logger    *log.Logger

	rng        *rand.Rand
	cfg        config.Settings
	lastEvents []Event
	frames     uint64
}

// NewSession creates an idle session. Call Enter to start playing.
func NewSession(opts Options) *Session {
	rt := opts.Runtime
	if rt.Width <= 0 || rt.Height <= 0 {
		def := core.DefaultConfig()
		rt.Width, rt.Height = def.Width, def.Height
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		sampler:   input.NewSampler(),
		scheduler: opts.Scheduler,
		settings:  opts.Settings,
		balls:     opts.Balls,
		audio:     opts.Audio,
		points:    opts.Points,
		surface:   opts.Surface,
		logger:    logger,
		rng:       rand.New(rand.NewSource(rt.Seed)),
	}
	if s.scheduler == nil {
		s.scheduler = loop.NewManual()
	}

	s.cfg = s.readSettings()
	s.state = NewState(rt.Width, rt.Height, s.cfg.BallSpeed, s.rng)
	return s
}

// Input returns the sampler frontends feed key and touch events into.
func (s *Session) Input() *input.Sampler {
	return s.sampler
}

// SetSurface mounts or replaces the drawing surface. nil unmounts it.
func (s *Session) SetSurface(dst core.Surface) {
	s.surface = dst
}

// State returns a copy of the simulation state.
func (s *Session) State() State {
	return s.state.Clone()
}

// Lifecycle returns the state of the frame loop.
func (s *Session) Lifecycle() Lifecycle {
	return s.lifecycle
}

// Settings returns the settings read by the most recent tick.
func (s *Session) Settings() config.Settings {
	return s.cfg
}

// LastEvents returns the events produced by the most recent tick.
func (s *Session) LastEvents() []Event {
	return s.lastEvents
}

// Frames returns the number of simulated frames.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Enter starts play. It is a no-op unless the session is idle.
func (s *Session) Enter() {
	if s.lifecycle != LifecycleIdle {
		return
	}
	s.state.Mode = StatePlaying
	s.lifecycle = LifecycleRunning
	s.scheduler.Start(s.tick)
	s.logger.Info("Game started", "ball_speed", s.cfg.BallSpeed, "disintegration", s.cfg.DisintegrationMode)
	s.Draw()
}

// TogglePause switches between playing and paused. While paused the frame
// loop is stopped: nothing moves and pending resets wait.
func (s *Session) TogglePause() {
	switch s.lifecycle {
	case LifecycleRunning:
		s.scheduler.Stop()
		s.sampler.ReleaseAll()
		s.lifecycle = LifecyclePaused
		s.state.Mode = StatePaused
		s.logger.Debug("Game paused", "clock", s.state.Clock)
	case LifecyclePaused:
		s.lifecycle = LifecycleRunning
		s.state.Mode = StatePlaying
		s.scheduler.Start(s.tick)
		s.logger.Debug("Game resumed", "clock", s.state.Clock)
	}
}

// Restart zeroes the score, serves a fresh ball, drops pending resets and
// resumes play. The frame loop keeps running if it already was.
func (s *Session) Restart() {
	if s.lifecycle == LifecycleTornDown {
		return
	}

	s.cfg = s.readSettings()
	s.state.Restart(s.cfg.BallSpeed, s.rng)
	s.lifecycle = LifecycleRunning
	if !s.scheduler.IsRunning() {
		s.scheduler.Start(s.tick)
	}
	s.logger.Info("Game restarted")
	s.Draw()
}

// Exit tears the session down. The frame loop is stopped for good and
// later calls to Enter, TogglePause or Restart do nothing.
func (s *Session) Exit() {
	if s.lifecycle == LifecycleTornDown {
		return
	}
	s.scheduler.Stop()
	s.sampler.ReleaseAll()
	s.lifecycle = LifecycleTornDown
	s.logger.Info("Game ended", "player1", s.state.Score.Player1, "player2", s.state.Score.Player2)
}

// Draw renders the current state onto the mounted surface without
// advancing anything.
func (s *Session) Draw() {
	Render(s.surface, s.state, s.renderOptions())
}

// tick is the frame callback handed to the scheduler.
func (s *Session) tick(dt time.Duration) {
	if s.lifecycle != LifecycleRunning {
		return
	}

	dt = min(max(dt, 0), MaxFrameDelta)
	s.cfg = s.readSettings()

	s.state.Clock += dt
	var served bool
	s.state, served = FireDue(s.state, s.cfg.BallSpeed, s.rng)
	if served {
		s.logger.Debug("Ball served", "generation", s.state.Generation)
	}

	directives := s.sampler.Sample()

	var events []Event
	s.state, events = Advance(s.state, directives, s.cfg)
	s.lastEvents = events
	s.frames++

	s.emit(events)
	s.Draw()
}

// emit forwards events to audio and the point log.
func (s *Session) emit(events []Event) {
	for _, e := range events {
		if s.cfg.SoundEnabled && s.audio != nil {
			s.audio.Play(cueFor(e.Kind))
		}

		if e.Kind != EventScore {
			continue
		}
		s.logger.Debug("Point", "scorer", e.Side, "player1", s.state.Score.Player1, "player2", s.state.Score.Player2)
		if s.points == nil {
			continue
		}
		err := s.points.RecordPoint(PointRecord{
			Scorer:        e.Side,
			Score:         s.state.Score,
			Hits:          s.state.Ball.Hits,
			Disintegrated: !s.state.Ball.Visible(),
			Clock:         s.state.Clock,
		})
		if err != nil {
			s.logger.Warn("Failed to record point", "error", err)
		}
	}
}

func (s *Session) readSettings() config.Settings {
	if s.settings == nil {
		return config.DefaultSettings()
	}
	return s.settings.Get()
}

func (s *Session) renderOptions() RenderOptions {
	opt := RenderOptions{
		PaddleColor: s.cfg.PaddleRGBA(),
		BallGlow:    s.cfg.BallGlow,
	}
	if s.balls != nil {
		opt.Ball = s.balls.Active()
	}
	return opt
}

func cueFor(k EventKind) audio.Cue {
	switch k {
	case EventWall:
		return audio.CueWall
	case EventPaddle:
		return audio.CuePaddle
	case EventScore:
		return audio.CueScore
	default:
		return audio.CueDisintegrate
	}
}
