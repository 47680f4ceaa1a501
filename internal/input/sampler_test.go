package input

import (
	"testing"

	"github.com/vovakirdan/pongpong/internal/core"
)

func TestSampleKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []Key
		left  Directive
		right Directive
	}{
		{"nothing held", nil, DirNone, DirNone},
		{"w moves left up", []Key{KeyW}, DirUp, DirNone},
		{"s moves left down", []Key{KeyS}, DirDown, DirNone},
		{"arrows drive right paddle", []Key{KeyArrowUp}, DirNone, DirUp},
		{"both paddles at once", []Key{KeyS, KeyArrowDown}, DirDown, DirDown},
		{"w and s together", []Key{KeyW, KeyS}, DirUp | DirDown, DirNone},
		{"unknown keys ignored", []Key{"x", "enter"}, DirNone, DirNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSampler()
			for _, k := range tc.keys {
				s.KeyDown(k)
			}
			d := s.Sample()
			if d.Left != tc.left {
				t.Errorf("Left = %s, expected %s", d.Left, tc.left)
			}
			if d.Right != tc.right {
				t.Errorf("Right = %s, expected %s", d.Right, tc.right)
			}
		})
	}
}

func TestKeyUpReleases(t *testing.T) {
	s := NewSampler()
	s.KeyDown(KeyW)
	s.KeyUp(KeyW)

	if s.Held(KeyW) {
		t.Error("KeyUp should release the key")
	}
	if d := s.Sample(); d.Left != DirNone {
		t.Errorf("Left = %s after release, expected none", d.Left)
	}
}

func TestSampleDoesNotConsume(t *testing.T) {
	s := NewSampler()
	s.KeyDown(KeyArrowDown)

	first := s.Sample()
	second := s.Sample()
	if first != second {
		t.Errorf("Sample() should be repeatable, got %+v then %+v", first, second)
	}
}

func TestTouchQuadrants(t *testing.T) {
	const w, h = 800.0, 600.0

	tests := []struct {
		name string
		x, y float64
		side core.Side
		dir  Directive
	}{
		{"upper left", 100, 100, core.SideLeft, DirUp},
		{"lower left", 100, 500, core.SideLeft, DirDown},
		{"upper right", 700, 100, core.SideRight, DirUp},
		{"lower right", 700, 500, core.SideRight, DirDown},
		{"center line belongs to right", 400, 299, core.SideRight, DirUp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSampler()
			s.TouchStart(1, tc.x, tc.y, w, h)
			d := s.Sample()
			if got := d.For(tc.side); got != tc.dir {
				t.Errorf("%s directive = %s, expected %s", tc.side, got, tc.dir)
			}
			if got := d.For(tc.side.Opponent()); got != DirNone {
				t.Errorf("%s directive = %s, expected none", tc.side.Opponent(), got)
			}
		})
	}
}

func TestMultiTouch(t *testing.T) {
	s := NewSampler()
	s.TouchStart(1, 50, 50, 800, 600)
	s.TouchStart(2, 750, 550, 800, 600)

	d := s.Sample()
	if d.Left != DirUp || d.Right != DirDown {
		t.Errorf("Sample() = %+v, expected left up and right down", d)
	}

	s.TouchEnd(1)
	d = s.Sample()
	if d.Left != DirNone || d.Right != DirDown {
		t.Errorf("after TouchEnd(1), Sample() = %+v", d)
	}
}

func TestReleaseAll(t *testing.T) {
	s := NewSampler()
	s.KeyDown(KeyW)
	s.KeyDown(KeyArrowUp)
	s.TouchStart(7, 10, 10, 800, 600)

	s.ReleaseAll()

	if d := s.Sample(); d != (Directives{}) {
		t.Errorf("Sample() after ReleaseAll = %+v, expected none", d)
	}
}

func TestDirectiveString(t *testing.T) {
	if (DirUp | DirDown).String() != "up+down" {
		t.Errorf("String() = %q", (DirUp | DirDown).String())
	}
	if DirNone.String() != "none" {
		t.Errorf("String() = %q", DirNone.String())
	}
}
