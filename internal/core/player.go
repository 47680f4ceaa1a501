package core

// Side identifies a paddle and the player who owns it.
// Player 1 always plays the left paddle.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Player1 and Player2 name the sides the way the scoreboard does.
const (
	Player1 = SideLeft
	Player2 = SideRight
)

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}
