package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pongpong/internal/audio"
	"github.com/vovakirdan/pongpong/internal/platform/desktop"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a window and play with keyboard or touch.

Touch controls split the screen into quadrants: the left half drives the
left paddle, the right half the right paddle; touching the upper half moves
a paddle up, the lower half moves it down.

The keys are the same as in the terminal (see 'pongpong play --help').

Examples:
  pongpong window
  pongpong window --ball ./cat.png --debug`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, _ []string) {
	e, err := newEnv(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	speaker := audio.NewSpeaker(e.logger)
	deps := desktop.Deps{
		Settings: e.settings,
		Balls:    e.balls,
		Points:   e.points,
		Audio:    speaker,
		Logger:   e.logger,
	}

	runErr := desktop.Run(runtimeConfig(), deps)

	speaker.Close()
	e.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
