package main

import (
	"fmt"

	"github.com/jpalmerr/glowcast/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the loop.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a glowcast configuration file without starting the loop.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  glowcast validate -c config.yaml
  glowcast validate --config /etc/glowcast/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	paletteDesc := "built-in (6 bands)"
	if len(cfg.Palette) > 0 {
		paletteDesc = fmt.Sprintf("custom (%d bands)", len(cfg.Palette))
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Station:       %s (location %s)\n", cfg.Station.Name, cfg.Station.LocationID)
	fmt.Printf("  Poll interval: %s\n", cfg.PollInterval.Duration())
	fmt.Printf("  Strip:         %s, %d pixels\n", cfg.Strip.Driver, cfg.Strip.Pixels)
	fmt.Printf("  Palette:       %s\n", paletteDesc)

	return nil
}
