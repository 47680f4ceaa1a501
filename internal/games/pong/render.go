package pong

import (
	"image/color"
	"strconv"

	"github.com/vovakirdan/pongpong/internal/core"
)

// Render parameters taken from the original canvas look.
const (
	PaddleGlow  = 20
	BallGlow    = 30
	ScoreSize   = 48
	ScoreY      = 60
	NetDash     = 10
	NetWidth    = 2
	ScoreOffset = 4 // Scores sit at W/ScoreOffset and 3W/ScoreOffset
)

// RenderOptions carries the per-frame inputs of Render that are not part of
// the simulation state.
type RenderOptions struct {
	PaddleColor color.RGBA
	BallGlow    bool
	Ball        *core.Sprite // Active custom ball, nil for the default ball
}

// Render draws s onto dst in fixed layer order: background, paddles, ball,
// center line, scores. It does not touch s. A nil dst is a no-op.
func Render(dst core.Surface, s State, opt RenderOptions) {
	if dst == nil {
		return
	}

	dst.Clear(core.ColorBlack)

	dst.FillRect(s.Left.Rect(), opt.PaddleColor, PaddleGlow)
	dst.FillRect(s.Right.Rect(), opt.PaddleColor, PaddleGlow)

	drawBall(dst, s.Ball, opt)

	dst.DashedVLine(s.Width/2, 0, s.Height, core.Dash{On: NetDash, Off: NetDash, Width: NetWidth}, core.ColorNet)

	dst.Text(strconv.Itoa(s.Score.Player1), s.Width/ScoreOffset, ScoreY, ScoreSize, core.ColorWhite)
	dst.Text(strconv.Itoa(s.Score.Player2), s.Width*3/ScoreOffset, ScoreY, ScoreSize, core.ColorWhite)
}

func drawBall(dst core.Surface, b Ball, opt RenderOptions) {
	if !b.Visible() {
		return
	}

	glow := 0.0
	if opt.BallGlow {
		glow = BallGlow
	}

	if opt.Ball != nil && opt.Ball.Image != nil {
		dst.DrawSprite(opt.Ball, b.X, b.Y, b.Radius, b.Opacity(), glow)
		return
	}
	dst.FillCircle(b.X, b.Y, b.Radius, core.ColorWhite, b.Opacity(), glow)
}
