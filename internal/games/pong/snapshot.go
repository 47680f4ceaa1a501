package pong

import (
	"fmt"
	"hash/fnv"
)

// Snapshot is a compact, comparable view of a State using integers only.
// Positions are rounded down; velocities and disintegration are scaled by 1000.
type Snapshot struct {
	Clock          int64 // milliseconds
	Generation     uint64
	BallX          int
	BallY          int
	BallVX         int
	BallVY         int
	Disintegration int
	Hits           int
	LeftY          int
	RightY         int
	Score1         int
	Score2         int
	Pending        int
	Mode           string
}

// Snapshot returns the compact view of s.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Clock:          s.Clock.Milliseconds(),
		Generation:     s.Generation,
		BallX:          int(s.Ball.X),
		BallY:          int(s.Ball.Y),
		BallVX:         int(s.Ball.DX * 1000),
		BallVY:         int(s.Ball.DY * 1000),
		Disintegration: int(s.Ball.Disintegration * 1000),
		Hits:           s.Ball.Hits,
		LeftY:          int(s.Left.Y),
		RightY:         int(s.Right.Y),
		Score1:         s.Score.Player1,
		Score2:         s.Score.Player2,
		Pending:        len(s.Pending),
		Mode:           s.Mode.String(),
	}
}

// Hash returns a stable digest of the snapshot, used to compare runs.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%+v", s)
	return h.Sum64()
}

// String renders the snapshot on one line.
func (s Snapshot) String() string {
	return fmt.Sprintf("t=%dms gen=%d ball=(%d,%d) v=(%d,%d) dis=%d hits=%d paddles=(%d,%d) score=%d-%d pending=%d mode=%s",
		s.Clock, s.Generation, s.BallX, s.BallY, s.BallVX, s.BallVY, s.Disintegration, s.Hits,
		s.LeftY, s.RightY, s.Score1, s.Score2, s.Pending, s.Mode)
}
