package core

// Logical surface size. Every frontend scales this onto its own output.
const (
	SurfaceWidth  = 800
	SurfaceHeight = 600
)

// RuntimeConfig contains the fixed parameters of one game view.
type RuntimeConfig struct {
	Width    float64 // Logical surface width
	Height   float64 // Logical surface height
	TickRate int     // Frames per second the scheduler aims for (default 60)
	Seed     int64   // RNG seed for ball serves; 0 means seed from time in the platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:    SurfaceWidth,
		Height:   SurfaceHeight,
		TickRate: 60,
	}
}
