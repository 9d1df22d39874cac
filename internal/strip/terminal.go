package strip

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Terminal is a [Strip] implementation that renders the strip as a row
// of colored blocks in a terminal.
//
// Each Show writes one line: the pixel row followed by the hex value of
// the frame color. Useful for developing without hardware attached.
type Terminal struct {
	w       io.Writer
	pixels  int
	pending RGB
}

// NewTerminal creates a terminal strip with the given pixel count,
// writing to w.
func NewTerminal(w io.Writer, pixels int) *Terminal {
	return &Terminal{w: w, pixels: pixels}
}

// Fill stages the color for the next Show.
func (t *Terminal) Fill(c RGB) error {
	t.pending = c
	return nil
}

// Show renders the staged frame as one line of colored blocks.
func (t *Terminal) Show() error {
	block := color.BgRGB(int(t.pending.R), int(t.pending.G), int(t.pending.B))
	for i := 0; i < t.pixels; i++ {
		if _, err := block.Fprint(t.w, "  "); err != nil {
			return fmt.Errorf("terminal strip write: %w", err)
		}
	}
	_, err := fmt.Fprintf(t.w, "  #%02x%02x%02x\n", t.pending.R, t.pending.G, t.pending.B)
	return err
}

// Close is a no-op; the writer is owned by the caller.
func (t *Terminal) Close() error {
	return nil
}
