// Package strip provides LED strip drivers for glowcast.
//
// This package contains internal implementation details and is not part
// of the public API. It may change without notice.
//
// A driver exposes a two-phase update: Fill stages a uniform color for
// every pixel, Show commits the staged frame as a single visible update.
// The split mirrors addressable strip hardware (set pixels, then latch)
// and guarantees no partial-strip flicker.
package strip
