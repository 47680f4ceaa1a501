// Package desktop provides the windowed frontend built on Ebitengine.
package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/pongpong/internal/core"
)

// glowLayers is how many translucent rings approximate a blurred halo.
const glowLayers = 4

// glowStrength is the summed opacity of all halo rings.
const glowStrength = 0.45

// Surface draws onto an Ebitengine image. The target is only valid inside
// Game.Draw: outside of it (during Update) every call is a no-op.
type Surface struct {
	dst  *ebiten.Image
	face text.Face

	// The active ball sprite, uploaded to the GPU once per activation.
	spriteID  string
	spriteImg *ebiten.Image
}

// NewSurface creates an unbound surface.
func NewSurface() *Surface {
	return &Surface{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Bind sets the image drawn on. Pass nil to unbind.
func (s *Surface) Bind(dst *ebiten.Image) {
	s.dst = dst
}

// Clear implements core.Surface.
func (s *Surface) Clear(c color.RGBA) {
	if s.dst == nil {
		return
	}
	s.dst.Fill(c)
}

// FillRect implements core.Surface.
func (s *Surface) FillRect(r core.Rect, c color.RGBA, glow float64) {
	if s.dst == nil {
		return
	}
	if glow > 0 {
		for i := glowLayers; i >= 1; i-- {
			spread := glow * float64(i) / glowLayers / 2
			vector.FillRect(s.dst,
				float32(r.X-spread), float32(r.Y-spread),
				float32(r.W+2*spread), float32(r.H+2*spread),
				withAlpha(c, glowStrength/glowLayers), true)
		}
	}
	vector.FillRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, true)
}

// FillCircle implements core.Surface.
func (s *Surface) FillCircle(cx, cy, radius float64, c color.RGBA, alpha, glow float64) {
	if s.dst == nil {
		return
	}
	s.halo(cx, cy, radius, c, alpha, glow)
	vector.FillCircle(s.dst, float32(cx), float32(cy), float32(radius), withAlpha(c, alpha), true)
}

// DrawSprite implements core.Surface.
func (s *Surface) DrawSprite(sp *core.Sprite, cx, cy, radius, alpha, glow float64) {
	if s.dst == nil {
		return
	}
	img := s.sprite(sp)
	if img == nil {
		s.FillCircle(cx, cy, radius, core.ColorWhite, alpha, glow)
		return
	}
	s.halo(cx, cy, radius, core.ColorWhite, alpha, glow)

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2*radius/float64(b.Dx()), 2*radius/float64(b.Dy()))
	op.GeoM.Translate(cx-radius, cy-radius)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
}

// sprite returns the GPU image for sp, replacing the cached one when the
// active ball changed.
func (s *Surface) sprite(sp *core.Sprite) *ebiten.Image {
	if sp == nil || sp.Image == nil {
		return nil
	}
	if s.spriteImg != nil && s.spriteID == sp.ID {
		return s.spriteImg
	}
	if s.spriteImg != nil {
		s.spriteImg.Deallocate()
	}
	s.spriteID = sp.ID
	s.spriteImg = ebiten.NewImageFromImage(sp.Image)
	return s.spriteImg
}

func (s *Surface) halo(cx, cy, radius float64, c color.RGBA, alpha, glow float64) {
	if glow <= 0 {
		return
	}
	for i := glowLayers; i >= 1; i-- {
		r := radius + glow*float64(i)/glowLayers/2
		vector.FillCircle(s.dst, float32(cx), float32(cy), float32(r),
			withAlpha(c, alpha*glowStrength/glowLayers), true)
	}
}

// DashedVLine implements core.Surface.
func (s *Surface) DashedVLine(x, y0, y1 float64, d core.Dash, c color.RGBA) {
	if s.dst == nil {
		return
	}
	if d.On+d.Off <= 0 {
		vector.StrokeLine(s.dst, float32(x), float32(y0), float32(x), float32(y1), float32(d.Width), c, false)
		return
	}
	for y := y0; y < y1; y += d.On + d.Off {
		end := min(y+d.On, y1)
		vector.StrokeLine(s.dst, float32(x), float32(y), float32(x), float32(end), float32(d.Width), c, false)
	}
}

// Text implements core.Surface. The bitmap face is scaled up to size.
func (s *Surface) Text(str string, cx, y, size float64, c color.RGBA) {
	if s.dst == nil {
		return
	}
	s.text(str, cx, y, size, c, text.AlignCenter)
}

// text draws str with its baseline at y, aligned on x.
func (s *Surface) text(str string, x, y, size float64, c color.Color, align text.Align) {
	scale := size / float64(basicfont.Face7x13.Height)
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignEnd
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.face, op)
}

// withAlpha returns c at the given opacity.
func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(core.ClampF(alpha, 0, 1) * 0xff)}
}

var _ core.Surface = (*Surface)(nil)
