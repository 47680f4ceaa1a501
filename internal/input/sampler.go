// Package input turns raw key and touch state into per-paddle directives.
package input

import "github.com/vovakirdan/pongpong/internal/core"

// Key names a physical key the game listens to.
type Key string

// Keys consumed by the paddles. Frontends normalize to these names.
const (
	KeyW         Key = "w"
	KeyS         Key = "s"
	KeyArrowUp   Key = "arrowup"
	KeyArrowDown Key = "arrowdown"
)

// Directive is the movement requested for one paddle during one tick.
// Up and Down are independent bits; both may be set.
type Directive uint8

const (
	DirUp Directive = 1 << iota
	DirDown
)

// DirNone means the paddle stays put.
const DirNone Directive = 0

// Has reports whether d includes dir.
func (d Directive) Has(dir Directive) bool {
	return d&dir != 0
}

// String returns a human-readable form such as "up", "down", "up+down" or "none".
func (d Directive) String() string {
	switch {
	case d.Has(DirUp) && d.Has(DirDown):
		return "up+down"
	case d.Has(DirUp):
		return "up"
	case d.Has(DirDown):
		return "down"
	default:
		return "none"
	}
}

// Directives holds one directive per paddle.
type Directives struct {
	Left  Directive
	Right Directive
}

// For returns the directive of the given side.
func (d Directives) For(side core.Side) Directive {
	if side == core.SideLeft {
		return d.Left
	}
	return d.Right
}

// keyBinding maps a key to the paddle and direction it drives.
type keyBinding struct {
	side core.Side
	dir  Directive
}

var bindings = map[Key]keyBinding{
	KeyW:         {core.SideLeft, DirUp},
	KeyS:         {core.SideLeft, DirDown},
	KeyArrowUp:   {core.SideRight, DirUp},
	KeyArrowDown: {core.SideRight, DirDown},
}

// touchPoint is where an active touch started, already resolved to a paddle.
type touchPoint struct {
	side core.Side
	dir  Directive
}

// Sampler accumulates held keys and active touches between frames.
// It is owned by the frame loop and is not safe for concurrent use.
type Sampler struct {
	held    map[Key]bool
	touches map[int]touchPoint
}

// NewSampler creates a sampler with nothing held.
func NewSampler() *Sampler {
	return &Sampler{
		held:    make(map[Key]bool),
		touches: make(map[int]touchPoint),
	}
}

// KeyDown marks a key as held. Keys the game does not use are ignored.
func (s *Sampler) KeyDown(k Key) {
	if _, ok := bindings[k]; ok {
		s.held[k] = true
	}
}

// KeyUp releases a key.
func (s *Sampler) KeyUp(k Key) {
	delete(s.held, k)
}

// Held reports whether k is currently held.
func (s *Sampler) Held(k Key) bool {
	return s.held[k]
}

// TouchStart registers touch id at (x, y) on a surface of size w x h.
// The left half drives the left paddle, the right half the right paddle;
// the upper half of the surface means up and the lower half means down.
func (s *Sampler) TouchStart(id int, x, y, w, h float64) {
	side := core.SideLeft
	if x >= w/2 {
		side = core.SideRight
	}
	dir := DirUp
	if y >= h/2 {
		dir = DirDown
	}
	s.touches[id] = touchPoint{side: side, dir: dir}
}

// TouchEnd releases touch id.
func (s *Sampler) TouchEnd(id int) {
	delete(s.touches, id)
}

// ReleaseAll drops every held key and active touch.
func (s *Sampler) ReleaseAll() {
	clear(s.held)
	clear(s.touches)
}

// Sample returns the directives implied by the current key and touch state.
// It does not consume or change that state.
func (s *Sampler) Sample() Directives {
	var d Directives
	apply := func(side core.Side, dir Directive) {
		if side == core.SideLeft {
			d.Left |= dir
		} else {
			d.Right |= dir
		}
	}

	for k := range s.held {
		b := bindings[k]
		apply(b.side, b.dir)
	}
	for _, tp := range s.touches {
		apply(tp.side, tp.dir)
	}
	return d
}
