package store

import "time"

// DisplayState is the color currently committed to the LED strip,
// together with the weather sample it was derived from.
//
// DisplayState is the storage representation, optimized for JSON
// serialization (used by the REST API and SSE). It is decoupled from
// the poller's internal types to allow independent evolution.
type DisplayState struct {
	// Station is the display name of the weather station.
	Station string `json:"station"`

	// TemperatureC is the temperature the color was derived from, in
	// the station's configured unit system.
	TemperatureC float64 `json:"temperature_c"`

	// R, G, B are the committed color channels after brightness scaling.
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`

	// Hex is the committed color as "#rrggbb", for direct use in CSS.
	Hex string `json:"hex"`

	// UpdatedAt is when this state was committed to the strip.
	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines the interface for holding and subscribing to the
// current display state.
//
// Store implementations must be safe for concurrent access. The
// pub/sub mechanism allows real-time updates to be pushed to connected
// clients (e.g., via Server-Sent Events).
type Store interface {
	// Update replaces the current display state and notifies all
	// subscribers.
	Update(state DisplayState)

	// Current returns the current display state. ok is false until the
	// first successful update.
	Current() (state DisplayState, ok bool)

	// Subscribe returns a channel that receives display updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan DisplayState

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan DisplayState)
}
