package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Fixed colors used by the render pipeline.
var (
	ColorBlack = color.RGBA{0x00, 0x00, 0x00, 0xff}
	ColorWhite = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorNet   = color.RGBA{0x33, 0x33, 0x33, 0xff} // center line
	ColorCyan  = color.RGBA{0x00, 0xff, 0xff, 0xff} // default paddle color
)

// ParseHex parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("core: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Fade blends c toward bg by alpha (1 keeps c, 0 yields bg).
// Cell-based surfaces have no real transparency, so opacity becomes a blend.
func Fade(c, bg color.RGBA, alpha float64) color.RGBA {
	a := ClampF(alpha, 0, 1)
	mix := func(fg, b uint8) uint8 {
		return uint8(float64(b) + (float64(fg)-float64(b))*a + 0.5)
	}
	return color.RGBA{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 0xff}
}
