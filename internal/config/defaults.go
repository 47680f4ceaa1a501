package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hard-coded default settings.
func DefaultSettings() Settings {
	return Settings{
		PaddleSpeed:         5,
		BallSpeed:           4,
		Difficulty:          DifficultyMedium,
		SoundEnabled:        true,
		DisintegrationMode:  false,
		DisintegrationSpeed: DisintegrationMedium,
		PaddleColor:         "#00ffff",
		BallGlow:            true,
		Theme:               ThemeNeon,
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
