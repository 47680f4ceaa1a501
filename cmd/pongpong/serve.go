package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pongpong/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pongpong SSH server",
	Long: `Start an SSH server that hosts a game per connection.

Each SSH connection gets its own hot-seat game: both paddles are played
from the connecting keyboard. Connections never play against each other.
Settings changes made in one game stay in that game.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pongpong/host_key

Examples:
  pongpong serve                           # Listen on :23234 with auto-generated key
  pongpong serve --ssh :2222               # Listen on port 2222
  pongpong serve --host-key ./my_host_key  # Use specific host key
  pongpong serve --ball ./cat.png          # Every game starts with this ball

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	e, err := newEnv(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Settings = e.settings.Get()
	cfg.Ball = e.ballID
	// Remote terminals redraw slowly; keep the default unless asked for.
	if cmd.Flags().Changed("fps") {
		cfg.TickRate = flagFPS
	}

	server, err := tui.NewSSHServer(cfg, e.db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		e.close()
		os.Exit(1)
	}

	fmt.Printf("Starting pongpong SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	runErr := server.ListenAndServe()
	e.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
