package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testSource builds a SourceInfo pointing at the given URL with the
// default temperature extractor shape.
func testSource(rawURL string) SourceInfo {
	return SourceInfo{
		Name:    "test",
		URL:     rawURL,
		Timeout: time.Second,
		Extractor: func(body []byte) (float64, error) {
			var temp float64
			if _, err := fmt.Sscanf(string(body), "%f", &temp); err != nil {
				return 0, fmt.Errorf("not a temperature: %w", err)
			}
			return temp, nil
		},
	}
}

// TestScheduler_StopBeforeStart verifies that calling Stop() on a scheduler
// that was never started does not panic and is a safe no-op.
func TestScheduler_StopBeforeStart(t *testing.T) {
	scheduler := NewScheduler(testSource("http://example.com"), time.Minute, testLogger())

	// this must not panic
	scheduler.Stop()
}

// TestScheduler_StopTwice verifies that Stop() is idempotent and can be
// called multiple times without panic or deadlock.
func TestScheduler_StopTwice(t *testing.T) {
	scheduler := NewScheduler(testSource("http://example.com"), time.Minute, testLogger())
	scheduler.Start(context.Background())

	// both calls must complete without panic or deadlock
	scheduler.Stop()
	scheduler.Stop()
}

// TestScheduler_StopAfterStart verifies the normal lifecycle: Start followed
// by Stop results in clean shutdown with the results channel closed.
func TestScheduler_StopAfterStart(t *testing.T) {
	scheduler := NewScheduler(testSource("http://example.com"), time.Minute, testLogger())
	scheduler.Start(context.Background())

	// drain results channel to prevent blocking
	go func() {
		for range scheduler.Results() {
		}
	}()

	// give the scheduler a moment to start polling
	time.Sleep(50 * time.Millisecond)

	scheduler.Stop()

	// verify results channel is closed by reading from it
	select {
	case _, ok := <-scheduler.Results():
		if ok {
			t.Error("expected results channel to be closed after Stop()")
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for results channel to close")
	}
}

// TestScheduler_ConcurrentStartStop verifies that calling Start() and Stop()
// concurrently does not cause a race condition or panic.
// Run with: go test -race ./internal/poller/...
func TestScheduler_ConcurrentStartStop(t *testing.T) {
	// run multiple iterations to increase chance of catching races
	for i := 0; i < 100; i++ {
		scheduler := NewScheduler(testSource("http://example.com"), time.Minute, testLogger())

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			scheduler.Start(context.Background())
		}()

		go func() {
			defer wg.Done()
			scheduler.Stop()
		}()

		wg.Wait()

		// drain any remaining results
		for range scheduler.Results() {
		}
	}
}

// TestScheduler_ImmediateFirstPoll verifies the source is polled
// immediately on Start, not after the first tick.
func TestScheduler_ImmediateFirstPoll(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "21.5")
	}))
	defer ts.Close()

	// interval far longer than the test; only the immediate poll can fire
	scheduler := NewScheduler(testSource(ts.URL), time.Hour, testLogger())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	select {
	case result := <-scheduler.Results():
		if result.Failure != FailureNone {
			t.Fatalf("result.Failure = %q, want none (err: %v)", result.Failure, result.Err)
		}
		if result.TemperatureC != 21.5 {
			t.Errorf("result.TemperatureC = %v, want 21.5", result.TemperatureC)
		}
		if result.SourceName != "test" {
			t.Errorf("result.SourceName = %q, want %q", result.SourceName, "test")
		}
		if result.StatusCode != http.StatusOK {
			t.Errorf("result.StatusCode = %d, want 200", result.StatusCode)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no immediate poll result received")
	}
}

// TestScheduler_PollsOnInterval verifies repeated results arrive on the
// configured cadence.
func TestScheduler_PollsOnInterval(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "10.0")
	}))
	defer ts.Close()

	scheduler := NewScheduler(testSource(ts.URL), 50*time.Millisecond, testLogger())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	for i := 0; i < 3; i++ {
		select {
		case result := <-scheduler.Results():
			if result.Failure != FailureNone {
				t.Fatalf("result %d: Failure = %q (err: %v)", i, result.Failure, result.Err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("result %d never arrived", i)
		}
	}
}

// TestScheduler_FetchFailure verifies an unreachable source yields a
// fetch failure rather than a missing result.
func TestScheduler_FetchFailure(t *testing.T) {
	// a server that is immediately closed leaves a refused port
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	scheduler := NewScheduler(testSource(ts.URL), time.Hour, testLogger())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	select {
	case result := <-scheduler.Results():
		if result.Failure != FailureFetch {
			t.Errorf("result.Failure = %q, want %q", result.Failure, FailureFetch)
		}
		if result.Err == nil {
			t.Error("result.Err = nil, want error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no result received")
	}
}

// TestScheduler_NonSuccessStatusIsFetchFailure verifies a non-2xx
// response is reported as a fetch failure with the status captured.
func TestScheduler_NonSuccessStatusIsFetchFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	scheduler := NewScheduler(testSource(ts.URL), time.Hour, testLogger())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	select {
	case result := <-scheduler.Results():
		if result.Failure != FailureFetch {
			t.Errorf("result.Failure = %q, want %q", result.Failure, FailureFetch)
		}
		if result.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("result.StatusCode = %d, want 503", result.StatusCode)
		}
		if result.Err == nil || !strings.Contains(result.Err.Error(), "unexpected status 503") {
			t.Errorf("result.Err = %v, want unexpected status 503", result.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result received")
	}
}

// TestScheduler_ExtractorErrorIsParseFailure verifies an extractor error
// is reported as a parse failure with the body preserved.
func TestScheduler_ExtractorErrorIsParseFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not a number")
	}))
	defer ts.Close()

	scheduler := NewScheduler(testSource(ts.URL), time.Hour, testLogger())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	select {
	case result := <-scheduler.Results():
		if result.Failure != FailureParse {
			t.Errorf("result.Failure = %q, want %q", result.Failure, FailureParse)
		}
		if string(result.RawResponse) != "not a number" {
			t.Errorf("result.RawResponse = %q, want the original body", result.RawResponse)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result received")
	}
}

// TestScheduler_ExtractorPanicIsRecovered verifies a panicking extractor
// produces a parse failure with a correlation ID instead of crashing.
func TestScheduler_ExtractorPanicIsRecovered(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "21.5")
	}))
	defer ts.Close()

	source := testSource(ts.URL)
	source.Extractor = func(body []byte) (float64, error) {
		panic("extractor bug")
	}

	scheduler := NewScheduler(source, time.Hour, testLogger())
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	select {
	case result := <-scheduler.Results():
		if result.Failure != FailureParse {
			t.Errorf("result.Failure = %q, want %q", result.Failure, FailureParse)
		}
		if result.Err == nil || !strings.Contains(result.Err.Error(), "correlation_id") {
			t.Errorf("result.Err = %v, want an error carrying a correlation_id", result.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result received")
	}
}

// TestAwaitReachable_SucceedsWhenHostIsUp verifies the connect phase
// completes once the host accepts connections.
func TestAwaitReachable_SucceedsWhenHostIsUp(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	scheduler := NewScheduler(testSource(ts.URL), time.Minute, testLogger())
	defer scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := scheduler.AwaitReachable(ctx); err != nil {
		t.Errorf("AwaitReachable() error = %v", err)
	}
}

// TestAwaitReachable_ReturnsOnContextCancel verifies the infinite retry
// loop exits with the context error when cancelled.
func TestAwaitReachable_ReturnsOnContextCancel(t *testing.T) {
	// reserved TEST-NET-1 address; connections hang or fail, never succeed
	scheduler := NewScheduler(testSource("http://192.0.2.1:81"), time.Minute, testLogger())
	defer scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	err := scheduler.AwaitReachable(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("AwaitReachable() error = %v, want context.Canceled", err)
	}
}
