// Package tui provides the Bubble Tea frontend: a cell surface for the game,
// key handling, the pause overlay and the SSH server built on Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pongpong/internal/loop"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen ties the message to the scheduler run that requested it, so ticks
// still in flight after a pause are dropped.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// tickCmd returns a Bubble Tea command that sends one tick message after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// TeaScheduler is a loop.Scheduler driven by Bubble Tea tick messages.
// The model forwards TickMsg to Handle and returns Cmd after any control
// action so a (re)started loop gets its first tick.
type TeaScheduler struct {
	interval time.Duration
	tick     loop.TickFunc
	running  bool
	armed    bool // a tick for the current run is in flight
	gen      uint64
	last     time.Time
}

// NewTeaScheduler creates a stopped scheduler ticking at fps.
func NewTeaScheduler(fps int) *TeaScheduler {
	return &TeaScheduler{interval: loop.FrameDuration(fps)}
}

// Start implements loop.Scheduler.
func (s *TeaScheduler) Start(tick loop.TickFunc) {
	s.tick = tick
	if s.running || tick == nil {
		return
	}
	s.running = true
	s.armed = false
	s.gen++
	s.last = time.Time{}
}

// Stop implements loop.Scheduler.
func (s *TeaScheduler) Stop() {
	s.running = false
	s.tick = nil
	s.gen++
}

// IsRunning implements loop.Scheduler.
func (s *TeaScheduler) IsRunning() bool {
	return s.running
}

// Cmd returns the command that delivers the next tick, or nil if the loop
// is stopped or a tick is already on its way.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if !s.running || s.armed {
		return nil
	}
	s.armed = true
	return tickCmd(s.interval, s.gen)
}

// Handle runs one frame for msg and schedules the next one.
// Ticks from an earlier run are ignored.
func (s *TeaScheduler) Handle(msg TickMsg) tea.Cmd {
	if msg.Gen != s.gen {
		return nil
	}
	s.armed = false
	if !s.running {
		return nil
	}

	dt := s.interval
	if !s.last.IsZero() {
		dt = msg.Time.Sub(s.last)
	}
	s.last = msg.Time

	s.tick(dt)
	return s.Cmd()
}

var _ loop.Scheduler = (*TeaScheduler)(nil)
