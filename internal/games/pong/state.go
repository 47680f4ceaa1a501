// Package pong implements two-player Pong with an optional disintegration
// mode: the ball loses integrity on every paddle hit and is re-served once
// it has fully disintegrated.
package pong

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/pongpong/internal/core"
)

// Fixed geometry in surface units.
const (
	PaddleWidth  = 15
	PaddleHeight = 100
	PaddleInset  = 20 // Distance between a paddle and its side of the surface
	BallRadius   = 15
)

// Delays between a ball-ending event and the next serve.
const (
	DisintegrateResetDelay = 500 * time.Millisecond
	ScoreResetDelay        = 1000 * time.Millisecond
)

// GameState is the phase of the game view.
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
)

// String returns the name of the state.
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Ball is the single ball in play.
type Ball struct {
	X, Y           float64
	DX, DY         float64 // Velocity in surface units per frame
	Radius         float64
	Disintegration float64 // 0 = intact, 1 = fully disintegrated
	Hits           int     // Paddle contacts since the last serve
}

// Visible reports whether the ball should be drawn.
func (b Ball) Visible() bool {
	return b.Disintegration < 1
}

// Opacity is the alpha the ball is drawn with.
func (b Ball) Opacity() float64 {
	return core.ClampF(1-b.Disintegration, 0, 1)
}

// Paddle is one player's paddle. X never changes after creation.
type Paddle struct {
	X, Y float64
	W, H float64
}

// Rect returns the paddle's bounds.
func (p Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Score holds both players' points.
type Score struct {
	Player1 int
	Player2 int
}

// Add gives a point to side.
func (s *Score) Add(side core.Side) {
	if side == core.Player1 {
		s.Player1++
	} else {
		s.Player2++
	}
}

// For returns the points of side.
func (s Score) For(side core.Side) int {
	if side == core.Player1 {
		return s.Player1
	}
	return s.Player2
}

// PendingKind identifies why a pending reset was scheduled.
type PendingKind int

const (
	PendingDisintegrateReset PendingKind = iota
	PendingScoreReset
)

// String returns the name of the pending kind.
func (k PendingKind) String() string {
	switch k {
	case PendingDisintegrateReset:
		return "disintegrate-reset"
	case PendingScoreReset:
		return "score-reset"
	default:
		return "unknown"
	}
}

// Pending is a ball reset due at FireAt on the game clock.
// It only applies to the ball of the given generation.
type Pending struct {
	Kind       PendingKind
	FireAt     time.Duration
	Generation uint64
}

// State is the complete simulation state of one game view.
type State struct {
	Width, Height float64

	Left, Right Paddle
	Ball        Ball
	Score       Score
	Mode        GameState

	// Clock is the game time. It only advances while the game is running,
	// so pending resets freeze while paused.
	Clock time.Duration

	// Generation identifies the ball in play; every serve increments it.
	Generation uint64

	Pending []Pending
}

// NewState creates a state for a surface of the given size with centered
// paddles, zero score and a freshly served ball.
func NewState(width, height, ballSpeed float64, rng *rand.Rand) State {
	paddleY := (height - PaddleHeight) / 2
	s := State{
		Width:  width,
		Height: height,
		Left: Paddle{
			X: PaddleInset,
			Y: paddleY,
			W: PaddleWidth,
			H: PaddleHeight,
		},
		Right: Paddle{
			X: width - PaddleInset - PaddleWidth,
			Y: paddleY,
			W: PaddleWidth,
			H: PaddleHeight,
		},
		Mode: StateMenu,
	}
	s.Serve(ballSpeed, rng)
	return s
}

// Paddle returns the paddle of side.
func (s *State) Paddle(side core.Side) *Paddle {
	if side == core.SideLeft {
		return &s.Left
	}
	return &s.Right
}

// Serve replaces the ball with a fresh one at the center: intact, no hits,
// horizontal speed ballSpeed in a random direction and vertical speed in
// [-ballSpeed/2, ballSpeed/2]. Resets pending for the old ball become stale.
func (s *State) Serve(ballSpeed float64, rng *rand.Rand) {
	dir := 1.0
	if rng.Float64() < 0.5 {
		dir = -1
	}
	s.Ball = Ball{
		X:      s.Width / 2,
		Y:      s.Height / 2,
		DX:     dir * ballSpeed,
		DY:     (rng.Float64() - 0.5) * ballSpeed,
		Radius: BallRadius,
	}
	s.Generation++
}

// Restart zeroes the score, serves a new ball, drops every pending reset
// and puts the game back into play.
func (s *State) Restart(ballSpeed float64, rng *rand.Rand) {
	s.Score = Score{}
	s.Pending = nil
	s.Serve(ballSpeed, rng)
	s.Mode = StatePlaying
}

// Scored reports whether the ball in play already scored and is waiting
// for its serve.
func (s State) Scored() bool {
	for _, p := range s.Pending {
		if p.Kind == PendingScoreReset && p.Generation == s.Generation {
			return true
		}
	}
	return false
}

// schedule queues a reset of the current ball.
func (s *State) schedule(kind PendingKind, delay time.Duration) {
	s.Pending = append(s.Pending, Pending{
		Kind:       kind,
		FireAt:     s.Clock + delay,
		Generation: s.Generation,
	})
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Pending = slices.Clone(s.Pending)
	return s
}

// FireDue removes every pending reset due at the current clock and serves
// a new ball if one of them belongs to the ball in play. Stale entries are
// dropped without effect. It reports whether a serve happened.
func FireDue(s State, ballSpeed float64, rng *rand.Rand) (State, bool) {
	if len(s.Pending) == 0 {
		return s, false
	}

	next := s.Clone()
	kept := next.Pending[:0]
	reset := false
	for _, p := range next.Pending {
		if p.FireAt > next.Clock {
			kept = append(kept, p)
			continue
		}
		if p.Generation == next.Generation {
			reset = true
		}
	}
	next.Pending = kept
	if len(next.Pending) == 0 {
		next.Pending = nil
	}

	if reset {
		next.Serve(ballSpeed, rng)
	}
	return next, reset
}
