package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a two-player game in the terminal.

Controls:
  W/S        - Left paddle
  Up/Down    - Right paddle
  P/Space    - Pause (shows the point log)
  R          - Restart
  C          - Cycle paddle color
  G          - Toggle ball glow
  M          - Toggle sound
  X          - Toggle disintegration mode
  D          - Cycle disintegration speed
  B          - Cycle custom balls
  Q/Ctrl+C   - Quit

The terminal owns the screen while playing, so logs are discarded unless
--log-file is given.

Examples:
  pongpong play
  pongpong play --ball ./cat.png --log-file pong.log
  pongpong play --config ./settings.yaml --fps 30`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	e, err := newEnv(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	speaker := audio.NewSpeaker(e.logger)
	deps := tui.Deps{
		Settings: e.settings,
		Balls:    e.balls,
		Points:   e.points,
		Audio:    speaker,
		Logger:   e.logger,
	}

	// Run the game
	runErr := tui.Run(runtimeConfig(), deps, width, height)

	// Release resources before potential exit
	speaker.Close()
	e.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
