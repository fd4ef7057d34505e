package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OmaR-WezA/weza-docs/src/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wezadocsd",
	Short: "A service distributing course documents with per-download ownership watermarks",
}

func Execute() {
	slog.SetDefault(logging.CreateLogger())
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("failed to execute command", "error", err)
		os.Exit(1)
	}
}
