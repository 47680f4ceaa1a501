package tui

import (
	"image/color"
	"math"

	"github.com/vovakirdan/pongpong/internal/core"
)

// Glyphs used on the cell surface.
const (
	FillChar = '█'
	GlowChar = '░'
	NetChar  = '┆'
)

// glowAlpha is how strong a one-cell halo is drawn next to a glowing shape.
const glowAlpha = 0.35

// CellSurface draws the logical surface onto a character Screen, scaling
// logical coordinates to cells. Opacity is rendered by blending toward black.
type CellSurface struct {
	screen  *core.Screen
	logical core.Rect
}

// NewCellSurface maps a logical area of width x height onto screen.
func NewCellSurface(screen *core.Screen, width, height float64) *CellSurface {
	return &CellSurface{
		screen:  screen,
		logical: core.NewRect(0, 0, width, height),
	}
}

// Screen returns the target screen.
func (c *CellSurface) Screen() *core.Screen {
	return c.screen
}

func (c *CellSurface) scaleX() float64 { return float64(c.screen.Width()) / c.logical.W }
func (c *CellSurface) scaleY() float64 { return float64(c.screen.Height()) / c.logical.H }

// col and row map a logical coordinate to the cell containing it.
func (c *CellSurface) col(x float64) int { return int(math.Floor(x * c.scaleX())) }
func (c *CellSurface) row(y float64) int { return int(math.Floor(y * c.scaleY())) }

// cellCenter returns the logical coordinates of the center of cell (col, row).
func (c *CellSurface) cellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) / c.scaleX(), (float64(row) + 0.5) / c.scaleY()
}

// Clear implements core.Surface. The terminal background is the clear color.
func (c *CellSurface) Clear(color.RGBA) {
	c.screen.Clear()
}

// FillRect implements core.Surface.
func (c *CellSurface) FillRect(r core.Rect, fg color.RGBA, glow float64) {
	x0, y0 := c.col(r.X), c.row(r.Y)
	x1, y1 := c.col(r.Right()-1e-9), c.row(r.Bottom()-1e-9)

	if glow > 0 {
		halo := core.Fade(fg, core.ColorBlack, glowAlpha)
		for row := y0; row <= y1; row++ {
			c.setIfEmpty(x0-1, row, GlowChar, halo)
			c.setIfEmpty(x1+1, row, GlowChar, halo)
		}
	}

	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			c.screen.SetCell(col, row, FillChar, fg)
		}
	}
}

// FillCircle implements core.Surface.
func (c *CellSurface) FillCircle(cx, cy, radius float64, fg color.RGBA, alpha, glow float64) {
	shade := core.Fade(fg, core.ColorBlack, alpha)
	c.circle(cx, cy, radius, glow, shade, func(float64, float64) (color.RGBA, bool) {
		return shade, true
	})
}

// DrawSprite implements core.Surface. Each covered cell takes the sprite
// pixel under its center.
func (c *CellSurface) DrawSprite(s *core.Sprite, cx, cy, radius, alpha, glow float64) {
	if s == nil || s.Image == nil {
		c.FillCircle(cx, cy, radius, core.ColorWhite, alpha, glow)
		return
	}

	b := s.Image.Bounds()
	halo := core.Fade(core.ColorWhite, core.ColorBlack, alpha)
	c.circle(cx, cy, radius, glow, halo, func(x, y float64) (color.RGBA, bool) {
		u := (x - (cx - radius)) / (2 * radius)
		v := (y - (cy - radius)) / (2 * radius)
		px := b.Min.X + core.Clamp(int(u*float64(b.Dx())), 0, b.Dx()-1)
		py := b.Min.Y + core.Clamp(int(v*float64(b.Dy())), 0, b.Dy()-1)
		p := s.Image.RGBAAt(px, py)
		if p.A < 0x40 {
			return color.RGBA{}, false
		}
		// Pixels are premultiplied; undo that before blending.
		a := float64(p.A) / 0xff
		straight := color.RGBA{
			R: uint8(math.Min(float64(p.R)/a, 0xff)),
			G: uint8(math.Min(float64(p.G)/a, 0xff)),
			B: uint8(math.Min(float64(p.B)/a, 0xff)),
			A: 0xff,
		}
		return core.Fade(straight, core.ColorBlack, alpha), true
	})
}

// circle fills the cells whose centers fall inside the circle, coloring each
// with shade. The cell holding the center is always drawn so that a ball
// smaller than a cell stays visible.
func (c *CellSurface) circle(cx, cy, radius, glow float64, haloColor color.RGBA, shade func(x, y float64) (color.RGBA, bool)) {
	if glow > 0 {
		halo := core.Fade(haloColor, core.ColorBlack, glowAlpha)
		outer := radius + glow/2
		c.eachCell(cx, cy, outer, func(col, row int, x, y float64) {
			if math.Hypot(x-cx, y-cy) > radius {
				c.setIfEmpty(col, row, GlowChar, halo)
			}
		})
	}

	drawn := false
	c.eachCell(cx, cy, radius, func(col, row int, x, y float64) {
		if math.Hypot(x-cx, y-cy) > radius {
			return
		}
		if fg, ok := shade(x, y); ok {
			c.screen.SetCell(col, row, FillChar, fg)
			drawn = true
		}
	})

	if !drawn {
		if fg, ok := shade(cx, cy); ok {
			c.screen.SetCell(c.col(cx), c.row(cy), FillChar, fg)
		}
	}
}

// eachCell visits every cell overlapping the bounding box of a circle.
func (c *CellSurface) eachCell(cx, cy, radius float64, fn func(col, row int, x, y float64)) {
	for row := c.row(cy - radius); row <= c.row(cy+radius); row++ {
		for col := c.col(cx - radius); col <= c.col(cx+radius); col++ {
			x, y := c.cellCenter(col, row)
			fn(col, row, x, y)
		}
	}
}

// DashedVLine implements core.Surface. A row is drawn when its center lies
// on a dash. When a dash period spans less than two rows the pattern would
// alias, so every other row is drawn instead.
func (c *CellSurface) DashedVLine(x, y0, y1 float64, d core.Dash, fg color.RGBA) {
	col := c.col(x)
	first := c.row(y0)
	period := d.On + d.Off
	coarse := period*c.scaleY() < 2
	for row := first; row <= c.row(y1-1e-9); row++ {
		switch {
		case period <= 0:
		case coarse:
			if (row-first)%2 == 1 {
				continue
			}
		default:
			if _, y := c.cellCenter(col, row); math.Mod(y-y0, period) >= d.On {
				continue
			}
		}
		c.screen.SetCell(col, row, NetChar, fg)
	}
}

// Text implements core.Surface. Terminal text has a single size, so the
// label is placed on the row holding the middle of the glyph box.
func (c *CellSurface) Text(s string, cx, y, size float64, fg color.RGBA) {
	row := max(c.row(y-size/2), 0)
	width := len([]rune(s))
	c.screen.DrawTextColor(c.col(cx)-width/2, row, s, fg)
}

func (c *CellSurface) setIfEmpty(col, row int, r rune, fg color.RGBA) {
	if c.screen.Get(col, row) == ' ' {
		c.screen.SetCell(col, row, r, fg)
	}
}

var _ core.Surface = (*CellSurface)(nil)
