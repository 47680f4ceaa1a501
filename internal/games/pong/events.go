package pong

import (
	"fmt"

	"github.com/vovakirdan/pongpong/internal/core"
)

// EventKind names something the engine wants the outside world to hear about.
type EventKind int

const (
	EventWall EventKind = iota
	EventPaddle
	EventScore
	EventDisintegrate
)

// String returns the cue name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventWall:
		return "wall"
	case EventPaddle:
		return "paddle"
	case EventScore:
		return "score"
	case EventDisintegrate:
		return "disintegrate"
	default:
		return "unknown"
	}
}

// Event is emitted by Advance. Side is the paddle that was hit or the
// player who scored; it is meaningless for wall events.
type Event struct {
	Kind EventKind
	Side core.Side
}

func (e Event) String() string {
	if e.Kind == EventWall {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Side)
}
