package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
)

// StartMockWeatherServer runs a mock weather API whose temperature
// drifts up and down across the full band range, so the demo cycles
// through every color. The response shape mirrors the OpenWeatherMap
// current-weather endpoint.
// Call this in a goroutine before creating the station.
func StartMockWeatherServer(addr string) {
	var (
		mu     sync.Mutex
		temp   = 22.0
		rising = true
	)

	http.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		// drift 1-4 degrees per request, reversing at the extremes
		step := 1.0 + rand.Float64()*3.0
		if rising {
			temp += step
			if temp > 35 {
				rising = false
			}
		} else {
			temp -= step
			if temp < 5 {
				rising = true
			}
		}
		current := temp
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"name": "Demo City",
			"main": map[string]any{
				"temp":     current,
				"humidity": 40 + rand.Intn(40),
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
