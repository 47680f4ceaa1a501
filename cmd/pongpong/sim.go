package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/config"
	"github.com/vovakirdan/pongpong/internal/games/pong"
	"github.com/vovakirdan/pongpong/internal/input"
	"github.com/vovakirdan/pongpong/internal/loop"
)

var (
	flagFrames         int
	flagEvery          int
	flagHold           []string
	flagDisintegration bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game and print its state",
	Long: `Run a game without any display, advancing a fixed number of frames
at the configured tick rate. Keys given with --hold stay pressed for the
whole run. The same --seed and flags always produce the same result.

Examples:
  pongpong sim --seed 42
  pongpong sim --frames 600 --every 60
  pongpong sim --hold w --hold arrowdown --disintegration`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Number of frames to run")
	simCmd.Flags().IntVar(&flagEvery, "every", 0, "Print the state every N frames (0 = only at the end)")
	simCmd.Flags().StringSliceVar(&flagHold, "hold", nil, "Keys held for the whole run: w, s, arrowup, arrowdown")
	simCmd.Flags().BoolVar(&flagDisintegration, "disintegration", false, "Force disintegration mode on")
}

func runSim(_ *cobra.Command, _ []string) {
	keys, err := parseKeys(flagHold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	e, err := newEnv(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.close()

	if flagDisintegration {
		e.settings.Update(func(s *config.Settings) { s.DisintegrationMode = true })
	}

	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sched := loop.NewManual()
	opts := pong.Options{
		Runtime:   cfg,
		Scheduler: sched,
		Settings:  e.settings,
		Audio:     audio.Nop{},
		Logger:    e.logger,
	}
	if e.balls != nil {
		opts.Balls = e.balls
	}
	if e.points != nil {
		opts.Points = e.points
	}
	session := pong.NewSession(opts)
	session.Enter()
	for _, k := range keys {
		session.Input().KeyDown(k)
	}

	fmt.Printf("seed=%d fps=%d frames=%d\n", cfg.Seed, cfg.TickRate, flagFrames)

	res := simulate(session, sched, loop.FrameDuration(cfg.TickRate), flagFrames, flagEvery, os.Stdout)
	session.Exit()

	fmt.Printf("final  %s\n", res.snap)
	fmt.Printf("hash   %016x\n", res.snap.Hash())
	fmt.Printf("events %d frames: wall=%d paddle=%d score=%d disintegrate=%d\n", res.frames,
		res.events[pong.EventWall], res.events[pong.EventPaddle],
		res.events[pong.EventScore], res.events[pong.EventDisintegrate])
	printPoints(e)
}

type simResult struct {
	snap   pong.Snapshot
	frames uint64
	events map[pong.EventKind]int
}

// simulate ticks a running session n times, printing a snapshot every
// `every` frames.
func simulate(session *pong.Session, sched *loop.Manual, dt time.Duration, n, every int, w io.Writer) simResult {
	res := simResult{events: make(map[pong.EventKind]int)}
	for frame := 1; frame <= n; frame++ {
		if !sched.Tick(dt) {
			break
		}
		for _, ev := range session.LastEvents() {
			res.events[ev.Kind]++
		}
		if every > 0 && frame%every == 0 {
			fmt.Fprintf(w, "%6d %s\n", frame, session.State().Snapshot())
		}
	}
	res.snap = session.State().Snapshot()
	res.frames = session.Frames()
	return res
}

// printPoints prints the point log summary, when the database is available.
func printPoints(e *env) {
	if e.points == nil {
		return
	}
	stats, err := e.points.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read point log: %v\n", err)
		return
	}
	fmt.Printf("points %d, longest rally %d, avg rally %.1f, %d with a disintegrated ball\n",
		stats.Points, stats.LongestRally, stats.AvgRally, stats.Disintegrated)
}

// parseKeys validates the --hold values.
func parseKeys(names []string) ([]input.Key, error) {
	keys := make([]input.Key, 0, len(names))
	for _, name := range names {
		switch k := input.Key(strings.ToLower(strings.TrimSpace(name))); k {
		case input.KeyW, input.KeyS, input.KeyArrowUp, input.KeyArrowDown:
			keys = append(keys, k)
		default:
			return nil, fmt.Errorf("unknown key %q (want w, s, arrowup or arrowdown)", name)
		}
	}
	return keys, nil
}
