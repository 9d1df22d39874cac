// Package main is the entry point for the glowcast CLI.
//
// Glowcast can be run either as a library (SDK) or as a standalone
// binary with YAML configuration. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	glowcast run -c config.yaml      # Start the display loop
//	glowcast validate -c config.yaml # Validate configuration
//	glowcast palette -c config.yaml  # Preview the temperature bands
//	glowcast version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "glowcast",
	Short: "An ambient weather display for LED strips",
	Long: `Glowcast turns an addressable LED strip into an ambient weather display.

It polls a weather API on a fixed cadence, classifies the current
temperature into a color band, and lights the whole strip in that color.

Quick start:
  1. Create a config file (glowcast.yaml)
  2. Run: glowcast run -c glowcast.yaml
  3. Watch the strip (or the terminal) change with the weather

Example config:
  poll_interval: 10m
  station:
    name: Home
    location_id: "2643743"
    api_key: ${GLOWCAST_API_KEY}
  strip:
    driver: terminal
    pixels: 16`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this glowcast binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glowcast %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
