package core

import (
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in       string
		expected color.RGBA
		wantErr  bool
	}{
		{"#00ffff", ColorCyan, false},
		{"#ff00ff", color.RGBA{0xff, 0x00, 0xff, 0xff}, false},
		{"ffbf00", color.RGBA{0xff, 0xbf, 0x00, 0xff}, false},
		{"#333", ColorNet, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseHex(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	if got := Hex(color.RGBA{0x80, 0x00, 0xff, 0x10}); got != "#8000ff" {
		t.Errorf("Hex() = %q, expected #8000ff", got)
	}
}

func TestFade(t *testing.T) {
	if got := Fade(ColorWhite, ColorBlack, 1); got != ColorWhite {
		t.Errorf("Fade(alpha=1) = %v, expected white", got)
	}
	if got := Fade(ColorWhite, ColorBlack, 0); got != ColorBlack {
		t.Errorf("Fade(alpha=0) = %v, expected black", got)
	}
	half := Fade(ColorWhite, ColorBlack, 0.5)
	if half.R != 128 || half.G != 128 || half.B != 128 {
		t.Errorf("Fade(alpha=0.5) = %v, expected mid gray", half)
	}
	// Out of range alpha is clamped
	if got := Fade(ColorWhite, ColorBlack, 3); got != ColorWhite {
		t.Errorf("Fade(alpha=3) = %v, expected white", got)
	}
}
