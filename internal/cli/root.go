// Package cli implements the EarthWise command-line interface using
// Cobra. Each subcommand opens the daemon in-process and operates on
// the local store directly.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "earthwise",
	Short: "EarthWise — daily health and eco habit tracker",
	Long: `EarthWise tracks daily health and eco tasks, awards points,
keeps a streak, and snapshots each day at the midnight rollover.

Run "earthwise serve" to start the local API, or use the subcommands
to work with the store directly.`,
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
