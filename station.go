package glowcast

import (
	"errors"
	"net/url"
	"time"
)

const (
	defaultBaseURL        = "http://api.openweathermap.org/data/2.5/weather"
	defaultStationTimeout = 10 * time.Second
	defaultUnits          = "metric"
)

// Station represents the weather data source for one location.
//
// Station is immutable after creation via [NewStation]. All fields are
// private with getter methods, ensuring the station cannot be modified
// after construction.
//
// Stations are configured using the functional options pattern with
// [StationOption] functions such as [WithBaseURL], [WithUnits],
// [WithTimeout], [WithFieldPath], and [WithExtractor].
type Station struct {
	name       string
	baseURL    string
	locationID string
	apiKey     string
	units      string
	timeout    time.Duration
	extractor  TempExtractor
}

// NewStation creates a [Station] with the given name, location, API key,
// and options.
//
// The name is a human-readable identifier used in logs and the status
// API. The locationID identifies the location to the weather provider
// (an OpenWeatherMap city ID by default). The apiKey is the provider
// access credential sent as a query parameter.
//
// Returns an error if any of the three is empty, or if an option fails.
//
// Example:
//
//	st, err := glowcast.NewStation("Home", "2643743", os.Getenv("GLOWCAST_API_KEY"),
//	    glowcast.WithUnits("metric"),
//	    glowcast.WithTimeout(5 * time.Second),
//	)
func NewStation(name, locationID, apiKey string, opts ...StationOption) (Station, error) {
	if name == "" {
		return Station{}, errors.New("station name cannot be empty")
	}
	if locationID == "" {
		return Station{}, errors.New("station location ID cannot be empty")
	}
	if apiKey == "" {
		return Station{}, errors.New("station API key cannot be empty")
	}

	cfg := &stationConfig{
		baseURL: defaultBaseURL,
		units:   defaultUnits,
		timeout: defaultStationTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Station{}, err
		}
	}

	return Station{
		name:       name,
		baseURL:    cfg.baseURL,
		locationID: locationID,
		apiKey:     apiKey,
		units:      cfg.units,
		timeout:    cfg.timeout,
		extractor:  cfg.extractor,
	}, nil
}

// Name returns the station's display name.
func (s Station) Name() string {
	return s.name
}

// LocationID returns the provider location identifier.
func (s Station) LocationID() string {
	return s.locationID
}

// Units returns the unit system requested from the provider
// ("metric", "imperial", or "standard"). Defaults to "metric".
func (s Station) Units() string {
	return s.units
}

// Timeout returns the per-request HTTP timeout.
// Defaults to 10 seconds if not explicitly set via [WithTimeout].
func (s Station) Timeout() time.Duration {
	return s.timeout
}

// Extractor returns the station's [TempExtractor].
// Returns nil if no custom extractor was specified. When nil, the
// polling layer applies [DefaultTempExtractor].
func (s Station) Extractor() TempExtractor {
	return s.extractor
}

// URL returns the full request URL for the station, with the location
// identifier, API key, and unit system encoded as query parameters.
//
// The URL embeds the API key; avoid logging it verbatim.
func (s Station) URL() string {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		// baseURL was validated in WithBaseURL; the default is constant
		return s.baseURL
	}
	q := u.Query()
	q.Set("id", s.locationID)
	q.Set("appid", s.apiKey)
	q.Set("units", s.units)
	u.RawQuery = q.Encode()
	return u.String()
}
