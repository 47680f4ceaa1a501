// pongpong is a two-player Pong with a disintegrating ball and custom ball images.
//
// Usage:
//
//	pongpong play            - Play in the terminal
//	pongpong window          - Play in a desktop window
//	pongpong serve           - Start SSH server for remote hot-seat play
//	pongpong sim             - Run a headless game and print its state
//	pongpong defaults        - Print the default settings file
//
// Global flags:
//
//	--config <path>    - Settings YAML (default: ~/.pongpong/settings.yaml, ./configs/settings.yaml)
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible serves
//	--ball <image>     - Use an image as the ball
//	--db <path>        - Set database path (default: in-memory)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pongpong/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagSeed    int64
	flagBall    string
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pongpong",
	Short: "Pong for two players on one keyboard",
	Long: `pongpong is a two-player Pong. The left paddle uses W/S, the right
paddle uses the arrow keys. In disintegration mode the ball fades with every
paddle hit and is served again once it is gone.

Available commands:
  play      - Play in the terminal
  window    - Play in a desktop window
  serve     - Start SSH server for remote play
  sim       - Run a headless game
  defaults  - Print the default settings

Examples:
  pongpong play
  pongpong play --ball ./cat.png
  pongpong window --config ./settings.yaml
  pongpong serve --ssh :2222
  pongpong sim --frames 3600 --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagBall, "ball", "", "Image file (PNG, JPEG, GIF, WebP, BMP) to use as the ball")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.MemoryPath, "Path to the session database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(defaultsCmd)
}
