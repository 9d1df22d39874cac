package glowcast

import (
	"errors"
	"io"
	"os"

	"github.com/jpalmerr/glowcast/internal/strip"
)

// Strip is the hardware boundary for an addressable LED strip.
//
// Implementations stage a uniform color with Fill and commit it with
// Show, mirroring addressable strip hardware (set pixels, then latch).
// Nothing is visible until Show returns, so a displayed frame is always
// complete: there is no partial-strip flicker.
//
// Strip methods are called from a single goroutine by [Glowcast.Start];
// implementations do not need to be safe for concurrent use.
type Strip interface {
	// Fill stages the given color on every pixel of the pending frame.
	Fill(c Color) error

	// Show commits the pending frame as one visible update.
	Show() error

	// Close releases any resources held by the driver.
	Close() error
}

// stripAdapter bridges the public Strip interface to an internal driver.
type stripAdapter struct {
	inner strip.Strip
}

func (a stripAdapter) Fill(c Color) error {
	return a.inner.Fill(strip.RGB{R: c.R, G: c.G, B: c.B})
}

func (a stripAdapter) Show() error {
	return a.inner.Show()
}

func (a stripAdapter) Close() error {
	return a.inner.Close()
}

// NewTerminalStrip creates a [Strip] that renders the strip as a row of
// colored blocks in a terminal, one line per committed frame.
//
// If w is nil, os.Stdout is used. Useful for developing without
// hardware attached.
func NewTerminalStrip(w io.Writer, pixels int) (Strip, error) {
	if pixels < 1 {
		return nil, errors.New("pixel count must be positive")
	}
	if w == nil {
		w = os.Stdout
	}
	return stripAdapter{inner: strip.NewTerminal(w, pixels)}, nil
}

// NewOPCStrip creates a [Strip] that drives pixels over the Open Pixel
// Controller TCP protocol (fcserver and compatible controllers).
//
// addr is the controller's host:port; channel selects the OPC channel
// (0 broadcasts to all channels on most controllers). The connection is
// established lazily on the first committed frame and re-dialed after a
// write failure.
func NewOPCStrip(addr string, channel uint8, pixels int) (Strip, error) {
	opc, err := strip.NewOPC(addr, channel, pixels)
	if err != nil {
		return nil, err
	}
	return stripAdapter{inner: opc}, nil
}

// MemoryStrip is an in-memory [Strip] with pixel readback.
//
// MemoryStrip is useful in tests and as a null driver: it behaves like
// a real strip (Fill stages, Show commits atomically) and lets callers
// inspect the committed frame via [MemoryStrip.Pixels].
type MemoryStrip struct {
	inner *strip.Memory
}

// NewMemoryStrip creates an in-memory strip with the given pixel count.
// All pixels start black.
func NewMemoryStrip(pixels int) (*MemoryStrip, error) {
	if pixels < 1 {
		return nil, errors.New("pixel count must be positive")
	}
	return &MemoryStrip{inner: strip.NewMemory(pixels)}, nil
}

// Fill stages the color on every pixel of the pending frame.
func (m *MemoryStrip) Fill(c Color) error {
	return m.inner.Fill(strip.RGB{R: c.R, G: c.G, B: c.B})
}

// Show commits the pending frame.
func (m *MemoryStrip) Show() error {
	return m.inner.Show()
}

// Close marks the strip closed. Subsequent Fill and Show calls fail.
func (m *MemoryStrip) Close() error {
	return m.inner.Close()
}

// Pixels returns a snapshot of the committed frame.
// The returned slice is a copy; modifying it does not affect the strip.
func (m *MemoryStrip) Pixels() []Color {
	raw := m.inner.Pixels()
	pixels := make([]Color, len(raw))
	for i, p := range raw {
		pixels[i] = Color{R: p.R, G: p.G, B: p.B}
	}
	return pixels
}

// Shows returns the number of committed frames.
func (m *MemoryStrip) Shows() int {
	return m.inner.Shows()
}
