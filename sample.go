package glowcast

import "time"

// SampleResult holds the outcome of one poll cycle.
//
// SampleResult is immutable after creation and contains everything known
// about the cycle: the extracted temperature, the color that was applied
// to the strip, timing information, and any error that occurred. The
// RawResponse field preserves the original response body for debugging
// or custom processing in callbacks.
type SampleResult struct {
	// StationName is the display name of the polled station.
	StationName string

	// URL is the weather endpoint that was polled, including query
	// parameters (the API key is part of this URL; treat accordingly).
	URL string

	// TemperatureC is the extracted temperature in the station's
	// configured unit system. Only meaningful when Err is nil.
	TemperatureC float64

	// Color is the palette color derived from TemperatureC, before
	// brightness scaling. Zero when Err is non-nil.
	Color Color

	// Applied reports whether the strip was updated this cycle. False
	// when the fetch or parse failed, or when the strip rejected the
	// frame; in all those cases the previous display state is retained.
	Applied bool

	// Latency is the time taken to complete the HTTP request.
	Latency time.Duration

	// CheckedAt is the timestamp when the poll was performed.
	CheckedAt time.Time

	// Err contains any error that occurred during the cycle. nil means
	// the temperature was fetched, parsed, classified, and applied.
	Err error

	// RawResponse contains the HTTP response body, limited to 1MB.
	RawResponse []byte
}
