package strip

// RGB is one pixel color.
//
// This is the strip-internal color representation, decoupled from the
// public glowcast.Color type to avoid circular dependencies.
type RGB struct {
	R, G, B uint8
}

// Strip defines the interface for an addressable LED strip.
//
// Implementations stage colors with Fill and commit them with Show.
// Nothing is visible until Show returns; a failed Show leaves the
// previously committed frame displayed.
//
// Implementations must be safe for use from a single goroutine; the
// scheduler serializes all strip access.
type Strip interface {
	// Fill stages the given color on every pixel of the pending frame.
	// The displayed frame is unchanged until Show is called.
	Fill(c RGB) error

	// Show commits the pending frame as one visible update.
	Show() error

	// Close releases any resources held by the driver.
	Close() error
}
