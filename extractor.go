package glowcast

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TempExtractor is a function that extracts a temperature reading from
// a weather API response body.
//
// TempExtractor follows functional programming principles: it is a pure
// function where the same input always produces the same output. This
// makes extractors easy to test, compose, and reason about.
//
// Returning an error marks the poll cycle as a parse failure: the cycle
// is abandoned, the previous display state is retained, and polling
// resumes on the next tick.
type TempExtractor func(body []byte) (float64, error)

// JSONTempExtractor returns a [TempExtractor] that reads a numeric field
// from a JSON response using dot notation to navigate nested objects.
//
// The path parameter specifies the field using dot notation. For example,
// "main.temp" navigates to {"main": {"temp": 21.5}}.
//
// The extractor reads the entire body as one JSON document. It returns
// an error if the body is not valid JSON, the path does not resolve, or
// the resolved value is not a number.
//
// Example:
//
//	// For response: {"main": {"temp": 21.5, "humidity": 40}}
//	extractor := glowcast.JSONTempExtractor("main.temp")
func JSONTempExtractor(path string) TempExtractor {
	parts := strings.Split(path, ".")

	return func(body []byte) (float64, error) {
		var data interface{}
		if err := json.Unmarshal(body, &data); err != nil {
			return 0, fmt.Errorf("invalid JSON: %w", err)
		}

		current := data
		for i, part := range parts {
			obj, ok := current.(map[string]interface{})
			if !ok {
				return 0, fmt.Errorf("field %q not found: %q is not an object", path, strings.Join(parts[:i], "."))
			}
			current, ok = obj[part]
			if !ok {
				return 0, fmt.Errorf("field %q not found", path)
			}
		}

		value, ok := current.(float64)
		if !ok {
			return 0, fmt.Errorf("field %q is not a number (got %T)", path, current)
		}
		return value, nil
	}
}

// DefaultTempExtractor is the [TempExtractor] used when no extractor is
// specified on a [Station]. It reads the "main.temp" field, matching the
// OpenWeatherMap current-weather response shape.
var DefaultTempExtractor = JSONTempExtractor("main.temp")
