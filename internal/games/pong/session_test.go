package pong

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/config"
	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/input"
	"github.com/vovakirdan/pongpong/internal/loop"
)

const frame = time.Second / 60

type cueRecorder struct {
	cues []audio.Cue
}

func (r *cueRecorder) Play(c audio.Cue) { r.cues = append(r.cues, c) }

type pointLog struct {
	points []PointRecord
	err    error
}

func (l *pointLog) RecordPoint(p PointRecord) error {
	l.points = append(l.points, p)
	return l.err
}

type fixedBall struct{ sprite *core.Sprite }

func (b fixedBall) Active() *core.Sprite { return b.sprite }

type harness struct {
	session *Session
	sched   *loop.Manual
	store   *config.Store
	cues    *cueRecorder
	points  *pointLog
	surface *recordSurface
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	h := &harness{
		sched:   loop.NewManual(),
		store:   config.NewStore(config.DefaultSettings()),
		cues:    &cueRecorder{},
		points:  &pointLog{},
		surface: &recordSurface{},
	}
	rt := core.DefaultConfig()
	rt.Seed = seed
	h.session = NewSession(Options{
		Runtime:   rt,
		Scheduler: h.sched,
		Settings:  h.store,
		Audio:     h.cues,
		Points:    h.points,
		Surface:   h.surface,
	})
	return h
}

func TestSessionEnter(t *testing.T) {
	h := newHarness(t, 1)
	if h.session.Lifecycle() != LifecycleIdle {
		t.Errorf("Lifecycle() = %s, expected idle", h.session.Lifecycle())
	}
	if h.sched.Tick(frame) {
		t.Error("scheduler ticked before Enter")
	}

	h.session.Enter()
	if h.session.Lifecycle() != LifecycleRunning || !h.sched.IsRunning() {
		t.Fatalf("after Enter: lifecycle %s, scheduler running %v", h.session.Lifecycle(), h.sched.IsRunning())
	}
	if h.session.State().Mode != StatePlaying {
		t.Errorf("Mode = %s, expected playing", h.session.State().Mode)
	}

	h.sched.Run(10, frame)
	if h.session.Frames() != 10 {
		t.Errorf("Frames() = %d, expected 10", h.session.Frames())
	}
	if h.session.State().Clock != 10*frame {
		t.Errorf("Clock = %v, expected %v", h.session.State().Clock, 10*frame)
	}
}

func TestSessionTickOrder(t *testing.T) {
	h := newHarness(t, 1)
	h.session.Enter()
	h.surface.ops = nil

	h.session.Input().KeyDown(input.KeyS)
	before := h.session.State().Left.Y
	h.sched.Tick(frame)

	if got := h.session.State().Left.Y; got != before+5 {
		t.Errorf("Left.Y = %v, expected %v", got, before+5)
	}
	if h.surface.String() != "[clear rect rect circle line text text]" {
		t.Errorf("frame drew %s", h.surface)
	}
}

func TestSessionPauseFreezes(t *testing.T) {
	h := newHarness(t, 7)
	h.session.Enter()
	h.sched.Run(30, frame)

	h.session.TogglePause()
	if h.session.Lifecycle() != LifecyclePaused || h.session.State().Mode != StatePaused {
		t.Fatalf("after pause: lifecycle %s, mode %s", h.session.Lifecycle(), h.session.State().Mode)
	}

	frozen := h.session.State().Snapshot()
	h.session.Input().KeyDown(input.KeyW)
	for range 100 {
		h.sched.Tick(frame)
		h.session.tick(frame)
	}
	if got := h.session.State().Snapshot(); got != frozen {
		t.Errorf("state changed while paused:\n got %v\nwant %v", got, frozen)
	}
}

func TestSessionResumeContinues(t *testing.T) {
	paused := newHarness(t, 11)
	straight := newHarness(t, 11)
	paused.session.Enter()
	straight.session.Enter()

	paused.sched.Run(45, frame)
	paused.session.TogglePause()
	paused.sched.Run(200, frame)
	paused.session.TogglePause()
	paused.sched.Run(120, frame)

	straight.sched.Run(165, frame)

	got := paused.session.State().Snapshot()
	want := straight.session.State().Snapshot()
	if got != want {
		t.Errorf("paused run diverged:\n got %v\nwant %v", got, want)
	}
}

func TestSessionRestart(t *testing.T) {
	h := newHarness(t, 5)
	h.session.Enter()

	st := &h.session.state
	st.Score = Score{Player1: 4, Player2: 2}
	st.Ball.Disintegration = 1
	st.Ball.Hits = 9
	st.schedule(PendingDisintegrateReset, DisintegrateResetDelay)
	st.schedule(PendingScoreReset, ScoreResetDelay)
	h.session.TogglePause()

	h.session.Restart()

	s := h.session.State()
	if s.Score != (Score{}) {
		t.Errorf("Score = %+v, expected 0-0", s.Score)
	}
	if s.Ball.Disintegration != 0 || s.Ball.Hits != 0 {
		t.Errorf("Ball = %+v, expected fresh ball", s.Ball)
	}
	if s.Ball.X != 400 || s.Ball.Y != 300 {
		t.Errorf("Ball at (%v, %v), expected center", s.Ball.X, s.Ball.Y)
	}
	if len(s.Pending) != 0 {
		t.Errorf("Pending = %v, expected none", s.Pending)
	}
	if s.Mode != StatePlaying || h.session.Lifecycle() != LifecycleRunning {
		t.Errorf("mode %s lifecycle %s, expected playing/running", s.Mode, h.session.Lifecycle())
	}
	if !h.sched.IsRunning() {
		t.Error("Restart should leave the scheduler running")
	}

	// The old resets must not reach the new ball.
	gen := s.Generation
	h.sched.Run(int(ScoreResetDelay/frame)+5, frame)
	if got := h.session.State().Generation; got != gen {
		t.Errorf("Generation = %d, expected %d (stale reset fired)", got, gen)
	}
}

func TestSessionExit(t *testing.T) {
	h := newHarness(t, 1)
	h.session.Enter()
	h.sched.Run(3, frame)

	h.session.Exit()
	if h.sched.IsRunning() {
		t.Error("Exit should stop the scheduler")
	}
	if h.session.Lifecycle() != LifecycleTornDown {
		t.Errorf("Lifecycle() = %s, expected torn-down", h.session.Lifecycle())
	}

	frozen := h.session.State().Snapshot()
	h.session.tick(frame)
	h.session.Enter()
	h.session.TogglePause()
	h.session.Restart()
	if h.sched.IsRunning() {
		t.Error("scheduler restarted after Exit")
	}
	if got := h.session.State().Snapshot(); got != frozen {
		t.Errorf("state changed after Exit: %v", got)
	}
}

func TestSessionServeAfterScore(t *testing.T) {
	h := newHarness(t, 2)
	h.session.Enter()
	h.session.state.Ball = Ball{X: 2, Y: 50, DX: -4, Radius: BallRadius}
	gen := h.session.state.Generation

	h.sched.Tick(frame)
	if h.session.State().Score.Player2 != 1 {
		t.Fatalf("Score = %+v, expected player 2 to score", h.session.State().Score)
	}

	ticks := 0
	for h.session.State().Generation == gen && ticks < 200 {
		h.sched.Tick(frame)
		ticks++
	}
	// 1000ms at 60fps, give or take one frame of rounding.
	if ticks < 59 || ticks > 61 {
		t.Errorf("serve took %d frames, expected about 60", ticks)
	}
	if h.session.State().Score.Player2 != 1 {
		t.Errorf("Score = %+v, expected a single point", h.session.State().Score)
	}
}

func TestSessionPendingWaitsWhilePaused(t *testing.T) {
	h := newHarness(t, 2)
	h.session.Enter()
	h.session.state.Ball = Ball{X: 2, Y: 50, DX: -4, Radius: BallRadius}
	h.sched.Tick(frame)
	gen := h.session.State().Generation

	h.session.TogglePause()
	time.Sleep(5 * time.Millisecond)
	h.session.TogglePause()

	h.sched.Run(30, frame)
	if h.session.State().Generation != gen {
		t.Error("reset fired before its delay elapsed in game time")
	}
}

func TestSessionSoundGating(t *testing.T) {
	tests := []struct {
		name     string
		sound    bool
		expected []audio.Cue
	}{
		{"sound on", true, []audio.Cue{audio.CueWall}},
		{"sound off", false, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, 1)
			h.store.Update(func(s *config.Settings) { s.SoundEnabled = tc.sound })
			h.session.Enter()
			h.session.state.Ball = Ball{X: 400, Y: 14, DX: 4, DY: -3, Radius: BallRadius}

			h.sched.Tick(frame)
			if len(h.cues.cues) != len(tc.expected) {
				t.Fatalf("cues = %v, expected %v", h.cues.cues, tc.expected)
			}
			for i := range tc.expected {
				if h.cues.cues[i] != tc.expected[i] {
					t.Errorf("cues[%d] = %s, expected %s", i, h.cues.cues[i], tc.expected[i])
				}
			}
		})
	}
}

func TestSessionCuesPerEvent(t *testing.T) {
	h := newHarness(t, 1)
	h.store.Update(func(s *config.Settings) {
		s.DisintegrationMode = true
		s.DisintegrationSpeed = config.DisintegrationFast
	})
	h.session.Enter()
	h.session.state.Ball = Ball{X: 52, Y: 300, DX: -4, Radius: BallRadius, Disintegration: 0.85}

	h.sched.Tick(frame)
	expected := []audio.Cue{audio.CuePaddle, audio.CueDisintegrate}
	if len(h.cues.cues) != 2 || h.cues.cues[0] != expected[0] || h.cues.cues[1] != expected[1] {
		t.Errorf("cues = %v, expected %v", h.cues.cues, expected)
	}
}

func TestSessionRecordsPoints(t *testing.T) {
	h := newHarness(t, 1)
	h.points.err = errors.New("disk full")
	h.session.Enter()
	h.session.state.Ball = Ball{X: 798, Y: 50, DX: 4, Radius: BallRadius, Hits: 3}

	h.sched.Tick(frame)

	if len(h.points.points) != 1 {
		t.Fatalf("points = %v, expected one", h.points.points)
	}
	p := h.points.points[0]
	if p.Scorer != core.Player1 || p.Score != (Score{Player1: 1}) || p.Hits != 3 || p.Disintegrated {
		t.Errorf("point = %+v", p)
	}
	if !h.sched.IsRunning() {
		t.Error("a failing point log must not stop the game")
	}
}

func TestSessionSettingsReadPerTick(t *testing.T) {
	h := newHarness(t, 1)
	h.session.Enter()
	h.session.Input().KeyDown(input.KeyArrowDown)

	before := h.session.State().Right.Y
	h.sched.Tick(frame)
	h.store.Update(func(s *config.Settings) { s.PaddleSpeed = 10 })
	h.sched.Tick(frame)

	if got := h.session.State().Right.Y; got != before+5+10 {
		t.Errorf("Right.Y = %v, expected %v", got, before+15)
	}
	if h.session.Settings().PaddleSpeed != 10 {
		t.Errorf("Settings().PaddleSpeed = %v, expected 10", h.session.Settings().PaddleSpeed)
	}
}

func TestSessionWithoutSurfaceOrAudio(t *testing.T) {
	sched := loop.NewManual()
	s := NewSession(Options{Scheduler: sched})
	s.Enter()
	sched.Run(120, frame)
	if s.Frames() != 120 {
		t.Errorf("Frames() = %d, expected 120", s.Frames())
	}
}

func TestSessionCustomBall(t *testing.T) {
	sprite := &core.Sprite{ID: "x", Image: nil}
	h := newHarness(t, 1)
	h.session.balls = fixedBall{sprite: sprite}
	h.session.Enter()
	h.surface.ops = nil
	h.sched.Tick(frame)

	// A sprite without pixels falls back to the default ball.
	if h.surface.String() != "[clear rect rect circle line text text]" {
		t.Errorf("frame drew %s", h.surface)
	}
}

func TestSessionDeterministic(t *testing.T) {
	a := newHarness(t, 99)
	b := newHarness(t, 99)
	for _, h := range []*harness{a, b} {
		h.session.Enter()
		h.session.Input().KeyDown(input.KeyW)
		h.session.Input().KeyDown(input.KeyArrowDown)
		h.sched.Run(3000, frame)
	}
	if a.session.State().Snapshot().Hash() != b.session.State().Snapshot().Hash() {
		t.Error("same seed and input produced different games")
	}
}
