package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pongpong/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default settings file",
	Long: `Print the built-in settings as YAML. Save the output to
~/.pongpong/settings.yaml and edit it; running games pick up changes
to that file without restarting.

Examples:
  pongpong defaults > ~/.pongpong/settings.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}
