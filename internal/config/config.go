// Package config provides the game settings model, YAML loading with
// embedded defaults, and a concurrency-safe settings store that frontends
// and the file watcher update between frames.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/vovakirdan/pongpong/internal/core"
)

// Difficulty is stored but not consumed by the physics.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DisintegrationSpeed selects how much integrity the ball loses per paddle hit.
type DisintegrationSpeed string

const (
	DisintegrationSlow   DisintegrationSpeed = "slow"
	DisintegrationMedium DisintegrationSpeed = "medium"
	DisintegrationFast   DisintegrationSpeed = "fast"
)

// Rate returns the disintegration added per paddle hit.
// Unknown values fall back to the slow rate.
func (s DisintegrationSpeed) Rate() float64 {
	switch s {
	case DisintegrationFast:
		return 0.2
	case DisintegrationMedium:
		return 0.1
	default:
		return 0.05
	}
}

// Next cycles slow -> medium -> fast -> slow.
func (s DisintegrationSpeed) Next() DisintegrationSpeed {
	switch s {
	case DisintegrationSlow:
		return DisintegrationMedium
	case DisintegrationMedium:
		return DisintegrationFast
	default:
		return DisintegrationSlow
	}
}

// Theme is cosmetic only.
type Theme string

const (
	ThemeNeon    Theme = "neon"
	ThemeRetro   Theme = "retro"
	ThemeMinimal Theme = "minimal"
)

// Speed bounds shared by paddle_speed and ball_speed.
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// Settings holds every tunable the game reads once per frame.
type Settings struct {
	PaddleSpeed         float64             `yaml:"paddle_speed"` // surface units per frame
	BallSpeed           float64             `yaml:"ball_speed"`   // surface units per frame
	Difficulty          Difficulty          `yaml:"difficulty"`
	SoundEnabled        bool                `yaml:"sound_enabled"`
	DisintegrationMode  bool                `yaml:"disintegration_mode"`
	DisintegrationSpeed DisintegrationSpeed `yaml:"disintegration_speed"`
	PaddleColor         string              `yaml:"paddle_color"` // #rrggbb
	BallGlow            bool                `yaml:"ball_glow"`
	Theme               Theme               `yaml:"theme"`
}

// PaddleRGBA returns the paddle color, falling back to the default cyan.
func (s Settings) PaddleRGBA() color.RGBA {
	c, err := core.ParseHex(s.PaddleColor)
	if err != nil {
		return core.ColorCyan
	}
	return c
}

// Validate reports every out-of-range or unknown value.
func (s Settings) Validate() error {
	var errs []error
	if !inSpeedRange(s.PaddleSpeed) {
		errs = append(errs, fmt.Errorf("paddle_speed %v out of range [%d, %d]", s.PaddleSpeed, MinSpeed, MaxSpeed))
	}
	if !inSpeedRange(s.BallSpeed) {
		errs = append(errs, fmt.Errorf("ball_speed %v out of range [%d, %d]", s.BallSpeed, MinSpeed, MaxSpeed))
	}
	switch s.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		errs = append(errs, fmt.Errorf("unknown difficulty %q", s.Difficulty))
	}
	switch s.DisintegrationSpeed {
	case DisintegrationSlow, DisintegrationMedium, DisintegrationFast:
	default:
		errs = append(errs, fmt.Errorf("unknown disintegration_speed %q", s.DisintegrationSpeed))
	}
	if _, err := core.ParseHex(s.PaddleColor); err != nil {
		errs = append(errs, fmt.Errorf("paddle_color: %w", err))
	}
	switch s.Theme {
	case ThemeNeon, ThemeRetro, ThemeMinimal:
	default:
		errs = append(errs, fmt.Errorf("unknown theme %q", s.Theme))
	}
	return errors.Join(errs...)
}

// inSpeedRange is false for NaN.
func inSpeedRange(v float64) bool {
	return v >= MinSpeed && v <= MaxSpeed
}

// Normalize clamps numeric ranges and replaces unknown values with defaults,
// so the simulation never sees an invalid configuration.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()

	if math.IsNaN(s.PaddleSpeed) {
		s.PaddleSpeed = def.PaddleSpeed
	}
	if math.IsNaN(s.BallSpeed) {
		s.BallSpeed = def.BallSpeed
	}
	s.PaddleSpeed = core.ClampF(s.PaddleSpeed, MinSpeed, MaxSpeed)
	s.BallSpeed = core.ClampF(s.BallSpeed, MinSpeed, MaxSpeed)

	switch s.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		s.Difficulty = def.Difficulty
	}
	switch s.DisintegrationSpeed {
	case DisintegrationSlow, DisintegrationMedium, DisintegrationFast:
	default:
		s.DisintegrationSpeed = def.DisintegrationSpeed
	}
	if c, err := core.ParseHex(s.PaddleColor); err != nil {
		s.PaddleColor = def.PaddleColor
	} else {
		s.PaddleColor = core.Hex(c)
	}
	switch s.Theme {
	case ThemeNeon, ThemeRetro, ThemeMinimal:
	default:
		s.Theme = def.Theme
	}
	return s
}

// PaddleColorOption is one entry of the paddle color palette.
type PaddleColorOption struct {
	Name  string
	Value string
}

// PaddleColors is the palette offered for the paddles.
var PaddleColors = []PaddleColorOption{
	{Name: "Cyan", Value: "#00ffff"},
	{Name: "Pink", Value: "#ff00ff"},
	{Name: "Amber", Value: "#ffbf00"},
	{Name: "Green", Value: "#00ff00"},
	{Name: "Red", Value: "#ff0000"},
	{Name: "Purple", Value: "#8000ff"},
}

// NextPaddleColor returns the palette entry after current.
// A color outside the palette restarts at the first entry.
func NextPaddleColor(current string) PaddleColorOption {
	for i, opt := range PaddleColors {
		if opt.Value == current {
			return PaddleColors[(i+1)%len(PaddleColors)]
		}
	}
	return PaddleColors[0]
}
