package pong

import (
	"math"

	"github.com/vovakirdan/pongpong/internal/config"
	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/input"
)

// Advance runs one frame of simulation and returns the new state together
// with the events it produced, in order:
//
//  1. move paddles (up is applied first, then down, so down wins when both are held)
//  2. translate the ball
//  3. reflect off the top and bottom walls
//  4. bounce off the left paddle
//  5. bounce off the right paddle
//  6. detect a score
//
// Resets are never applied here; they are scheduled as Pending entries and
// fired by FireDue. Advance never fails and tolerates a dead ball.
func Advance(s State, d input.Directives, cfg config.Settings) (State, []Event) {
	next := s.Clone()
	var events []Event

	movePaddle(&next.Left, d.Left, cfg.PaddleSpeed, next.Height)
	movePaddle(&next.Right, d.Right, cfg.PaddleSpeed, next.Height)

	b := &next.Ball
	b.X += b.DX
	b.Y += b.DY

	// Walls only reflect a ball heading into them, so a ball that is still
	// overlapping after a bounce does not flip back.
	if (b.Y <= b.Radius && b.DY < 0) || (b.Y >= next.Height-b.Radius && b.DY > 0) {
		b.DY = -b.DY
		events = append(events, Event{Kind: EventWall})
	}

	l := next.Left
	if b.X-b.Radius <= l.X+l.W && b.Y >= l.Y && b.Y <= l.Y+l.H && b.DX < 0 {
		events = next.paddleHit(core.SideLeft, cfg, events)
	}

	r := next.Right
	if b.X+b.Radius >= r.X && b.Y >= r.Y && b.Y <= r.Y+r.H && b.DX > 0 {
		events = next.paddleHit(core.SideRight, cfg, events)
	}

	// One point per ball. A disintegrated ball still scores if it leaves
	// before its reset fires.
	if !next.Scored() {
		switch {
		case b.X < 0:
			events = next.point(core.Player2, events)
		case b.X > next.Width:
			events = next.point(core.Player1, events)
		}
	}

	return next, events
}

// movePaddle applies a directive to p, keeping it inside [0, height-p.H].
func movePaddle(p *Paddle, d input.Directive, speed, height float64) {
	if d.Has(input.DirUp) {
		p.Y = math.Max(0, p.Y-speed)
	}
	if d.Has(input.DirDown) {
		p.Y = math.Min(height-p.H, p.Y+speed)
	}
}

// paddleHit bounces the ball off side's paddle and applies disintegration.
func (s *State) paddleHit(side core.Side, cfg config.Settings, events []Event) []Event {
	b := &s.Ball
	b.DX = -b.DX
	b.Hits++
	events = append(events, Event{Kind: EventPaddle, Side: side})

	if !cfg.DisintegrationMode {
		return events
	}

	before := b.Disintegration
	b.Disintegration = addIntegrityLoss(before, cfg.DisintegrationSpeed.Rate())
	if before < 1 && b.Disintegration >= 1 {
		events = append(events, Event{Kind: EventDisintegrate, Side: side})
		s.schedule(PendingDisintegrateReset, DisintegrateResetDelay)
	}
	return events
}

// addIntegrityLoss adds rate to d, clamped to [0, 1]. The sum is rounded so
// that repeated steps such as ten hits of 0.1 land exactly on 1.
func addIntegrityLoss(d, rate float64) float64 {
	sum := math.Round((d+rate)*1e9) / 1e9
	return core.ClampF(sum, 0, 1)
}

// point awards a point to scorer and schedules the next serve.
func (s *State) point(scorer core.Side, events []Event) []Event {
	s.Score.Add(scorer)
	s.schedule(PendingScoreReset, ScoreResetDelay)
	return append(events, Event{Kind: EventScore, Side: scorer})
}
