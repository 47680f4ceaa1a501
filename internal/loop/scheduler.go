// Package loop defines the frame scheduler capability that drives the
// simulate-then-render cycle, plus a deterministic manual implementation.
package loop

import "time"

// TickFunc is invoked once per frame with the time elapsed since the previous frame.
type TickFunc func(dt time.Duration)

// Scheduler drives a TickFunc at display rate.
// Frontends provide their own implementation (bubbletea ticks, ebiten Update);
// the game only depends on this interface.
type Scheduler interface {
	// Start begins calling tick every frame. Starting a running scheduler
	// replaces its tick function.
	Start(tick TickFunc)
	// Stop cancels the loop. No tick runs after Stop returns.
	Stop()
	// IsRunning reports whether the loop is active.
	IsRunning() bool
}

// FrameDuration returns the frame period for the given rate.
// Non-positive rates fall back to 60 fps.
func FrameDuration(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// Manual is a Scheduler advanced explicitly by calling Tick.
// It is used by tests and the headless simulator.
type Manual struct {
	tick    TickFunc
	running bool
}

// NewManual creates a stopped manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// Start implements Scheduler.
func (m *Manual) Start(tick TickFunc) {
	m.tick = tick
	m.running = tick != nil
}

// Stop implements Scheduler.
func (m *Manual) Stop() {
	m.running = false
	m.tick = nil
}

// IsRunning implements Scheduler.
func (m *Manual) IsRunning() bool {
	return m.running
}

// Tick runs one frame with the given delta. It is a no-op when stopped.
// It reports whether a frame was run.
func (m *Manual) Tick(dt time.Duration) bool {
	if !m.running || m.tick == nil {
		return false
	}
	m.tick(dt)
	return true
}

// Run ticks n frames of dt each, stopping early if the scheduler stops.
// It returns the number of frames actually run.
func (m *Manual) Run(n int, dt time.Duration) int {
	ran := 0
	for range n {
		if !m.Tick(dt) {
			break
		}
		ran++
	}
	return ran
}
