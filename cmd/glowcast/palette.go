package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jpalmerr/glowcast"
	"github.com/jpalmerr/glowcast/config"
	"github.com/spf13/cobra"
)

// paletteCmd previews the temperature bands in the terminal.
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Preview the temperature bands",
	Long: `Preview the temperature-to-color bands in the terminal.

Without a config file, the built-in palette is shown. With -c, the
palette from the config file is shown (falling back to the built-in
palette if the file defines none).

Example:
  glowcast palette
  glowcast palette -c config.yaml`,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)

	paletteCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
}

func runPalette(cmd *cobra.Command, args []string) error {
	palette := glowcast.DefaultPalette

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		palette, err = config.BuildPalette(cfg.Palette)
		if err != nil {
			return fmt.Errorf("invalid palette: %w", err)
		}
	}

	return renderPalette(os.Stdout, palette)
}

// renderPalette writes one line per band: a colored swatch, the hex
// value, and the temperature range the band covers.
func renderPalette(w io.Writer, p glowcast.Palette) error {
	bands := p.Bands()

	for i, b := range bands {
		swatch := color.BgRGB(int(b.Color.R), int(b.Color.G), int(b.Color.B))
		if _, err := swatch.Fprint(w, "      "); err != nil {
			return fmt.Errorf("palette write: %w", err)
		}

		var rng string
		switch {
		case i == 0 && b.Exclusive:
			rng = fmt.Sprintf("above %.1f°", b.Min)
		case i == 0:
			rng = fmt.Sprintf("%.1f° and above", b.Min)
		default:
			rng = fmt.Sprintf("%.1f° to %.1f°", b.Min, bands[i-1].Min)
		}
		if _, err := fmt.Fprintf(w, "  %s  %s\n", b.Color.String(), rng); err != nil {
			return fmt.Errorf("palette write: %w", err)
		}
	}

	floor := p.Floor()
	swatch := color.BgRGB(int(floor.R), int(floor.G), int(floor.B))
	if _, err := swatch.Fprint(w, "      "); err != nil {
		return fmt.Errorf("palette write: %w", err)
	}
	if len(bands) > 0 {
		_, err := fmt.Fprintf(w, "  %s  below %.1f°\n", floor.String(), bands[len(bands)-1].Min)
		return err
	}
	_, err := fmt.Fprintf(w, "  %s  all temperatures\n", floor.String())
	return err
}
