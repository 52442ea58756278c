// Package cli implements the digd command-line interface using Cobra.
// `digd serve` runs the daemon; the other subcommands talk to a
// running daemon over its HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "digd",
	Short: "digd — adaptive compute allocation daemon",
	Long: `digd measures host load and thermal state and adaptively splits
CPU/GPU capacity between the interactive foreground and background
compute workers, enforced through cgroups v2 on Linux.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
