package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jpalmerr/glowcast/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testAssets is a minimal stand-in for the embedded dashboard.
var testAssets = fstest.MapFS{
	"assets/index.html": &fstest.MapFile{
		Data: []byte(`<html><head><title>{{.Title}}</title></head><body></body></html>`),
	},
}

// startServer starts a server on the given port and returns the store
// backing it. The server shuts down when the test ends.
func startServer(t *testing.T, port int, title string) *store.MemoryStore {
	t.Helper()

	st := store.NewMemoryStore()
	srv := NewServer(st, port, testAssets, title, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return st
}

func testState(temp float64) store.DisplayState {
	return store.DisplayState{
		Station:      "Test",
		TemperatureC: temp,
		B:            255,
		Hex:          "#0000ff",
		UpdatedAt:    time.Now(),
	}
}

func TestServer_DisplayBeforeFirstUpdate(t *testing.T) {
	startServer(t, 19101, "")

	resp, err := http.Get("http://localhost:19101/api/display")
	if err != nil {
		t.Fatalf("GET /api/display error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d before first update, want 204", resp.StatusCode)
	}
}

func TestServer_DisplayReturnsCurrentState(t *testing.T) {
	st := startServer(t, 19102, "")
	st.Update(testState(21.5))

	resp, err := http.Get("http://localhost:19102/api/display")
	if err != nil {
		t.Fatalf("GET /api/display error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{`"station":"Test"`, `"temperature_c":21.5`, `"hex":"#0000ff"`, `"b":255`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("body missing %q\nGot: %s", want, body)
		}
	}
}

func TestServer_DisplayRejectsNonGet(t *testing.T) {
	startServer(t, 19103, "")

	resp, err := http.Post("http://localhost:19103/api/display", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/display error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServer_StatusPageTitle(t *testing.T) {
	tests := []struct {
		name  string
		port  int
		title string
		want  string
	}{
		{"default title", 19104, "", "<title>Glowcast</title>"},
		{"custom title", 19105, "Living Room", "<title>Living Room</title>"},
		{"title is escaped", 19106, "<script>", "<title>&lt;script&gt;</title>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startServer(t, tt.port, tt.title)

			resp, err := http.Get(fmt.Sprintf("http://localhost:%d/", tt.port))
			if err != nil {
				t.Fatalf("GET / error = %v", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.want) {
				t.Errorf("status page missing %q\nGot: %s", tt.want, body)
			}
		})
	}
}

func TestServer_UnknownPathIs404(t *testing.T) {
	startServer(t, 19107, "")

	resp, err := http.Get("http://localhost:19107/nope")
	if err != nil {
		t.Fatalf("GET /nope error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_PortAlreadyInUse(t *testing.T) {
	startServer(t, 19108, "")

	srv := NewServer(store.NewMemoryStore(), 19108, testAssets, "", testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err == nil {
		t.Error("Start() expected bind error for port in use, got nil")
	}
}

func TestServer_SSEStreamsUpdates(t *testing.T) {
	st := startServer(t, 19109, "")
	st.Update(testState(10))

	req, _ := http.NewRequest(http.MethodGet, "http://localhost:19109/api/sse", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/sse error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	reader := bufio.NewReader(resp.Body)

	// the current state is sent immediately on connect
	line := readSSEData(t, reader)
	if !strings.Contains(line, `"temperature_c":10`) {
		t.Errorf("initial SSE event = %q, want current state", line)
	}

	// subsequent updates stream in
	st.Update(testState(25))
	line = readSSEData(t, reader)
	if !strings.Contains(line, `"temperature_c":25`) {
		t.Errorf("streamed SSE event = %q, want the new state", line)
	}
}

// readSSEData reads lines until the next "data:" line, with a timeout.
func readSSEData(t *testing.T, reader *bufio.Reader) string {
	t.Helper()

	type lineResult struct {
		line string
		err  error
	}
	ch := make(chan lineResult, 1)

	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				ch <- lineResult{err: err}
				return
			}
			if strings.HasPrefix(line, "data:") {
				ch <- lineResult{line: line}
				return
			}
		}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			t.Fatalf("reading SSE stream: %v", res.err)
		}
		return res.line
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for SSE data line")
		return ""
	}
}

func TestServer_ShutdownOnContextCancel(t *testing.T) {
	st := store.NewMemoryStore()
	srv := NewServer(st, 19110, testAssets, "", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// server is up
	resp, err := http.Get("http://localhost:19110/api/display")
	if err != nil {
		t.Fatalf("GET before shutdown error = %v", err)
	}
	resp.Body.Close()

	cancel()

	// after shutdown, new connections are refused (allow a grace period)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get("http://localhost:19110/api/display")
		if err != nil {
			return // refused, shutdown complete
		}
		resp.Body.Close()
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("server still accepting connections after context cancellation")
}
