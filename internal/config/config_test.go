package config

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default yaml) failed: %v", err)
	}
	if cfg != DefaultSettings() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultSettings())
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("ball_speed: 7\ndisintegration_mode: true\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.BallSpeed != 7 {
		t.Errorf("BallSpeed = %v, expected 7", cfg.BallSpeed)
	}
	if !cfg.DisintegrationMode {
		t.Error("DisintegrationMode should be true")
	}
	if cfg.PaddleSpeed != 5 {
		t.Errorf("PaddleSpeed = %v, expected default 5", cfg.PaddleSpeed)
	}
	if cfg.PaddleColor != "#00ffff" {
		t.Errorf("PaddleColor = %q, expected default", cfg.PaddleColor)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("ball_speed: [oops")); err == nil {
		t.Error("Parse() should fail on malformed YAML")
	}
}

func TestNormalize(t *testing.T) {
	in := Settings{
		PaddleSpeed:         42,
		BallSpeed:           0,
		Difficulty:          "insane",
		DisintegrationSpeed: "warp",
		PaddleColor:         "#FF00FF",
		Theme:               "vaporwave",
	}
	out := in.Normalize()

	if out.PaddleSpeed != MaxSpeed {
		t.Errorf("PaddleSpeed = %v, expected %d", out.PaddleSpeed, MaxSpeed)
	}
	if out.BallSpeed != MinSpeed {
		t.Errorf("BallSpeed = %v, expected %d", out.BallSpeed, MinSpeed)
	}
	if out.Difficulty != DifficultyMedium {
		t.Errorf("Difficulty = %q, expected medium", out.Difficulty)
	}
	if out.DisintegrationSpeed != DisintegrationMedium {
		t.Errorf("DisintegrationSpeed = %q, expected medium", out.DisintegrationSpeed)
	}
	if out.PaddleColor != "#ff00ff" {
		t.Errorf("PaddleColor = %q, expected lowercase #ff00ff", out.PaddleColor)
	}
	if out.Theme != ThemeNeon {
		t.Errorf("Theme = %q, expected neon", out.Theme)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("normalized settings should validate, got %v", err)
	}
}

func TestNormalizeNaN(t *testing.T) {
	cfg, err := Parse([]byte("paddle_speed: .nan\nball_speed: .nan\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	store := NewStore(cfg)
	got := store.Get()
	def := DefaultSettings()
	if got.PaddleSpeed != def.PaddleSpeed {
		t.Errorf("PaddleSpeed = %v, expected %v", got.PaddleSpeed, def.PaddleSpeed)
	}
	if got.BallSpeed != def.BallSpeed {
		t.Errorf("BallSpeed = %v, expected %v", got.BallSpeed, def.BallSpeed)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("normalized settings should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}

	tests := []struct {
		name         string
		paddle, ball float64
	}{
		{"nan paddle speed", math.NaN(), 5},
		{"nan ball speed", 5, math.NaN()},
		{"infinite ball speed", 5, math.Inf(1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			s.PaddleSpeed, s.BallSpeed = tc.paddle, tc.ball
			if err := s.Validate(); err == nil {
				t.Error("Validate() should reject the speed")
			}
		})
	}

	bad := DefaultSettings()
	bad.BallSpeed = 11
	bad.PaddleColor = "teal"
	if err := bad.Validate(); err == nil {
		t.Error("Validate() should reject out of range values")
	}
}

func TestDisintegrationRate(t *testing.T) {
	tests := []struct {
		speed    DisintegrationSpeed
		expected float64
	}{
		{DisintegrationSlow, 0.05},
		{DisintegrationMedium, 0.1},
		{DisintegrationFast, 0.2},
		{"", 0.05},
	}
	for _, tc := range tests {
		if got := tc.speed.Rate(); got != tc.expected {
			t.Errorf("%q.Rate() = %v, expected %v", tc.speed, got, tc.expected)
		}
	}

	if DisintegrationFast.Next() != DisintegrationSlow {
		t.Error("fast should cycle back to slow")
	}
}

func TestNextPaddleColor(t *testing.T) {
	if got := NextPaddleColor("#00ffff"); got.Name != "Pink" {
		t.Errorf("NextPaddleColor(cyan) = %s, expected Pink", got.Name)
	}
	if got := NextPaddleColor("#8000ff"); got.Name != "Cyan" {
		t.Errorf("NextPaddleColor(purple) = %s, expected Cyan", got.Name)
	}
	if got := NextPaddleColor("#123456"); got.Name != "Cyan" {
		t.Errorf("NextPaddleColor(unknown) = %s, expected Cyan", got.Name)
	}
}

func TestPaddleRGBAFallback(t *testing.T) {
	s := DefaultSettings()
	s.PaddleColor = "nope"
	if got := s.PaddleRGBA(); got.G != 0xff || got.B != 0xff || got.R != 0 {
		t.Errorf("PaddleRGBA() = %v, expected cyan fallback", got)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("paddle_speed: 9\nsound_enabled: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.PaddleSpeed != 9 || cfg.SoundEnabled {
		t.Errorf("Load() = %+v, expected paddle_speed 9 and sound off", cfg)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() should fail for a missing explicit path")
	}
	if cfg != DefaultSettings() {
		t.Error("Load() should still return defaults on error")
	}
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore(DefaultSettings())

	got := store.Update(func(s *Settings) {
		s.BallSpeed = 100
		s.SoundEnabled = false
	})

	if got.BallSpeed != MaxSpeed {
		t.Errorf("Update() should normalize, BallSpeed = %v", got.BallSpeed)
	}
	if store.Get().SoundEnabled {
		t.Error("Get() should reflect the update")
	}
}

func TestWatchReloadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("ball_speed: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(DefaultSettings())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Watch(ctx, path, store, log.New(io.Discard)); err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("ball_speed: 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if store.Get().BallSpeed == 8 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("BallSpeed = %v after file change, expected 8", store.Get().BallSpeed)
}
