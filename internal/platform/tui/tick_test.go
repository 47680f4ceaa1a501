package tui

import (
	"testing"
	"time"
)

func TestTeaSchedulerLifecycle(t *testing.T) {
	s := NewTeaScheduler(50)
	if s.IsRunning() {
		t.Fatal("new scheduler should be stopped")
	}
	if cmd := s.Cmd(); cmd != nil {
		t.Error("Cmd() on a stopped scheduler should be nil")
	}

	var ticks []time.Duration
	s.Start(func(dt time.Duration) { ticks = append(ticks, dt) })
	if !s.IsRunning() {
		t.Fatal("IsRunning() = false after Start()")
	}
	if cmd := s.Cmd(); cmd == nil {
		t.Fatal("Cmd() after Start() should schedule a tick")
	}
	if cmd := s.Cmd(); cmd != nil {
		t.Error("Cmd() should not schedule a second tick while one is in flight")
	}

	t0 := time.Unix(100, 0)
	if cmd := s.Handle(TickMsg{Time: t0, Gen: s.gen}); cmd == nil {
		t.Error("Handle() should schedule the next tick")
	}
	s.Handle(TickMsg{Time: t0.Add(30 * time.Millisecond), Gen: s.gen})

	if len(ticks) != 2 {
		t.Fatalf("ticks = %d, expected 2", len(ticks))
	}
	if ticks[0] != 20*time.Millisecond {
		t.Errorf("first dt = %v, expected the frame interval", ticks[0])
	}
	if ticks[1] != 30*time.Millisecond {
		t.Errorf("second dt = %v, expected 30ms", ticks[1])
	}
}

func TestTeaSchedulerDropsStaleTicks(t *testing.T) {
	s := NewTeaScheduler(60)
	calls := 0
	tick := func(time.Duration) { calls++ }

	s.Start(tick)
	s.Cmd()
	stale := TickMsg{Time: time.Now(), Gen: s.gen}

	s.Stop()
	if s.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
	if cmd := s.Handle(stale); cmd != nil || calls != 0 {
		t.Errorf("stale tick ran: calls = %d", calls)
	}

	s.Start(tick)
	if cmd := s.Handle(stale); cmd != nil || calls != 0 {
		t.Errorf("tick from earlier run ran after restart: calls = %d", calls)
	}
	if cmd := s.Cmd(); cmd == nil {
		t.Error("Cmd() after restart should schedule a tick")
	}
	s.Handle(TickMsg{Time: time.Now(), Gen: s.gen})
	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}
}

func TestTeaSchedulerStartNil(t *testing.T) {
	s := NewTeaScheduler(60)
	s.Start(nil)
	if s.IsRunning() {
		t.Error("Start(nil) should leave the scheduler stopped")
	}
}
