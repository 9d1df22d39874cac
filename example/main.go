package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/glowcast"
)

func main() {
	// start mock weather API (see mock_server.go)
	go StartMockWeatherServer(":9999")
	time.Sleep(100 * time.Millisecond)

	// a station pointed at the mock server; no real API key needed
	st, err := glowcast.NewStation("Demo", "2643743", "demo-key",
		glowcast.WithBaseURL("http://localhost:9999/weather"),
	)
	if err != nil {
		slog.Error("failed to create station", "error", err)
		os.Exit(1)
	}

	// render the strip as colored blocks in the terminal
	ledStrip, err := glowcast.NewTerminalStrip(nil, 16)
	if err != nil {
		slog.Error("failed to create strip", "error", err)
		os.Exit(1)
	}
	defer ledStrip.Close()

	gc, err := glowcast.New(
		glowcast.WithStation(st),
		// short interval so the demo is lively; real deployments use the
		// default 10 minutes
		glowcast.WithPollInterval(5*time.Second),
		glowcast.WithStrip(ledStrip),
		glowcast.WithPort(8080),
		glowcast.WithTitle("Glowcast Demo"),
		glowcast.WithSampleCallback(func(s glowcast.SampleResult) {
			if s.Err == nil {
				fmt.Printf("  %.1f°C -> %s\n", s.TemperatureC, s.Color)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create glowcast", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Glowcast Demo                                       ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   The strip below changes with the mock temperature,  ║")
	fmt.Println("  ║   which drifts through every color band.              ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Status page: http://localhost:8080                  ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := gc.Start(ctx); err != nil {
		slog.Error("glowcast error", "error", err)
		os.Exit(1)
	}
}
