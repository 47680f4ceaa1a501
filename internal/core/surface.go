package core

import (
	"image"
	"image/color"
)

// Sprite is a decoded, circle-masked image ready to be drawn as the ball.
// It is produced once per activation and shared read-only by every frame.
type Sprite struct {
	ID    string
	Name  string
	Image *image.RGBA // square, transparent outside the inscribed circle
}

// Dash describes a dashed stroke.
type Dash struct {
	On    float64 // Length of each drawn segment
	Off   float64 // Length of each gap
	Width float64 // Stroke width
}

// Surface is the 2D drawing target of the render pipeline.
// All coordinates are logical surface coordinates; implementations scale
// them onto whatever output they own (a window, a terminal grid, a recorder).
type Surface interface {
	// Clear fills the whole surface.
	Clear(c color.RGBA)

	// FillRect fills r. glow > 0 adds a halo of the same color of roughly that radius.
	FillRect(r Rect, c color.RGBA, glow float64)

	// FillCircle fills a circle with the given opacity and optional halo.
	FillCircle(cx, cy, radius float64, c color.RGBA, alpha, glow float64)

	// DrawSprite draws s scaled to the circle's bounding box, clipped to the circle.
	DrawSprite(s *Sprite, cx, cy, radius, alpha, glow float64)

	// DashedVLine strokes a dashed vertical line from y0 to y1.
	DashedVLine(x, y0, y1 float64, d Dash, c color.RGBA)

	// Text draws s horizontally centered on cx with its baseline near y.
	Text(s string, cx, y, size float64, c color.RGBA)
}
