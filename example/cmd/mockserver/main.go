// Standalone mock weather server for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/glowcast run -c example/config.yaml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"sync"
)

func main() {
	fmt.Println("Mock weather server starting on :9999")
	fmt.Println("The temperature drifts between 5°C and 35°C")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	var (
		mu     sync.Mutex
		temp   = 22.0
		rising = true
	)

	http.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
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

		slog.Info("serving weather", "temp", fmt.Sprintf("%.1f", current))

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

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("mock server error", "error", err)
		os.Exit(1)
	}
}
