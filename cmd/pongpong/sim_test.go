package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/core"
	"github.com/vovakirdan/pongpong/internal/games/pong"
	"github.com/vovakirdan/pongpong/internal/input"
	"github.com/vovakirdan/pongpong/internal/loop"
)

func TestParseKeys(t *testing.T) {
	keys, err := parseKeys([]string{"w", " ArrowDown "})
	if err != nil {
		t.Fatalf("parseKeys() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != input.KeyW || keys[1] != input.KeyArrowDown {
		t.Errorf("parseKeys() = %v, expected [w arrowdown]", keys)
	}

	if _, err := parseKeys([]string{"space"}); err == nil {
		t.Error("parseKeys() should reject unknown keys")
	}
}

func TestSimulate(t *testing.T) {
	newSession := func() (*pong.Session, *loop.Manual) {
		sched := loop.NewManual()
		cfg := core.DefaultConfig()
		cfg.Seed = 7
		s := pong.NewSession(pong.Options{Runtime: cfg, Scheduler: sched, Audio: audio.Nop{}})
		s.Enter()
		return s, sched
	}

	session, sched := newSession()
	var out bytes.Buffer
	res := simulate(session, sched, loop.FrameDuration(60), 600, 100, &out)

	if res.frames != 600 {
		t.Errorf("frames = %d, expected 600", res.frames)
	}
	if lines := strings.Count(out.String(), "\n"); lines != 6 {
		t.Errorf("printed %d snapshots, expected 6", lines)
	}
	total := 0
	for _, n := range res.events {
		total += n
	}
	if total == 0 {
		t.Error("ten seconds of play should produce events")
	}

	again, sched2 := newSession()
	if res2 := simulate(again, sched2, loop.FrameDuration(60), 600, 0, io.Discard); res2.snap != res.snap {
		t.Errorf("same seed gave %s, expected %s", res2.snap, res.snap)
	}
}

func TestSimulateStopsWithSession(t *testing.T) {
	sched := loop.NewManual()
	session := pong.NewSession(pong.Options{Scheduler: sched})
	session.Enter()
	session.Exit()

	if res := simulate(session, sched, loop.FrameDuration(60), 10, 0, io.Discard); res.frames != 0 {
		t.Errorf("frames = %d, expected 0 after exit", res.frames)
	}
}
