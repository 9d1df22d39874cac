package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// connectBackoff is the fixed delay between reachability attempts
	// during the startup connect phase.
	connectBackoff = 1 * time.Second

	// pingTimeout bounds a single reachability dial.
	pingTimeout = 5 * time.Second
)

// FailureKind distinguishes the two recoverable poll failure modes.
//
// Both kinds abandon the current cycle without touching the display
// state; polling resumes on the next tick.
type FailureKind string

const (
	// FailureNone indicates a successful poll.
	FailureNone FailureKind = ""

	// FailureFetch indicates the HTTP request could not be completed
	// or returned a non-2xx status.
	FailureFetch FailureKind = "fetch"

	// FailureParse indicates the response body was not valid JSON or
	// lacked the expected numeric field.
	FailureParse FailureKind = "parse"
)

// TempExtractor extracts a temperature from a response body.
//
// This is the poller-internal version of glowcast.TempExtractor,
// avoiding circular dependencies.
type TempExtractor func(body []byte) (float64, error)

// SourceInfo contains the configuration needed to poll the weather source.
//
// This is the poller-internal representation of a station, decoupled
// from the main glowcast.Station type to avoid circular dependencies.
type SourceInfo struct {
	// Name is the display name of the source.
	Name string

	// URL is the full request URL including query parameters.
	URL string

	// Timeout is the per-request timeout duration.
	Timeout time.Duration

	// Extractor parses the temperature out of the response body.
	Extractor TempExtractor
}

// Result holds the outcome of one poll of the weather source.
type Result struct {
	// SourceName is the display name of the polled source.
	SourceName string

	// URL is the target URL that was polled.
	URL string

	// TemperatureC is the extracted temperature. Only meaningful when
	// Failure is FailureNone.
	TemperatureC float64

	// Failure classifies the error, if any.
	Failure FailureKind

	// Err contains the error that caused the failure. nil on success.
	Err error

	// Latency is the time taken to complete the HTTP request.
	Latency time.Duration

	// CheckedAt is the timestamp when the poll was performed.
	CheckedAt time.Time

	// RawResponse contains the HTTP response body for debugging.
	RawResponse []byte

	// StatusCode is the HTTP status code returned by the source.
	StatusCode int
}

// Scheduler polls a single weather source on a fixed cadence.
//
// The scheduler polls immediately on start, then ticks at the
// configured interval with no jitter. Results (successes and failures
// alike) are emitted to a channel consumed by the caller. There is
// never more than one request in flight: the next poll waits for its
// tick regardless of how the previous one ended.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Scheduler struct {
	source   SourceInfo
	interval time.Duration
	client   *Client
	results  chan Result
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu        sync.Mutex
	started   bool
	stopped   bool
	closeOnce sync.Once
}

// NewScheduler creates a new polling [Scheduler].
//
// The scheduler must be started with [Scheduler.Start] and stopped with
// [Scheduler.Stop]. Results are available via [Scheduler.Results].
func NewScheduler(source SourceInfo, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		source:   source,
		interval: interval,
		client:   NewClient(),
		results:  make(chan Result, 1),
		logger:   logger,
	}
}

// Results returns a receive-only channel that emits [Result] values.
//
// The channel is closed when the scheduler stops. Consumers should read
// from this channel until it is closed to receive all poll results.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// AwaitReachable blocks until the source host accepts a TCP connection.
//
// Attempts are retried indefinitely with a fixed 1-second backoff;
// there is no maximum retry count. The only way out without success is
// cancelling the context, in which case the context's error is
// returned.
func (s *Scheduler) AwaitReachable(ctx context.Context) error {
	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := s.client.Ping(pingCtx, s.source.URL)
		cancel()
		if err == nil {
			return nil
		}

		s.logger.Warn("weather host unreachable, retrying",
			"source", s.source.Name,
			"error", err.Error(),
			"backoff", connectBackoff.String(),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
}

// Start begins the polling loop in a background goroutine.
//
// Start is non-blocking and returns immediately. The scheduler will:
//  1. Poll the source immediately
//  2. Tick at the configured interval
//  3. Continue until [Scheduler.Stop] is called or the context is cancelled
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	pollCtx := s.ctx // capture under lock to avoid race
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.closeOnce.Do(func() { close(s.results) })

		s.emit(pollCtx, s.poll(pollCtx))

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				s.emit(pollCtx, s.poll(pollCtx))
			}
		}
	}()
}

// Stop halts the scheduler and waits for all goroutines to complete.
//
// Stop cancels the scheduler's context and blocks until the polling
// loop exits, any in-flight request completes, and the results channel
// is closed.
//
// Stop is idempotent and safe to call multiple times. Calling Stop
// before Start is a safe no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()

	// clean up client connections after the polling goroutine is done
	if s.client != nil {
		s.client.Close()
	}

	// ensure channel is closed even if Start() was never called
	s.closeOnce.Do(func() { close(s.results) })
}

// emit delivers a result unless the context is cancelled first.
func (s *Scheduler) emit(ctx context.Context, result Result) {
	select {
	case s.results <- result:
	case <-ctx.Done():
	}
}

// poll performs one fetch-and-parse cycle against the source.
func (s *Scheduler) poll(ctx context.Context) Result {
	resp := s.client.Fetch(ctx, s.source.URL, s.source.Timeout)

	result := Result{
		SourceName:  s.source.Name,
		URL:         s.source.URL,
		Latency:     resp.Latency,
		CheckedAt:   time.Now(),
		RawResponse: resp.Body,
		StatusCode:  resp.StatusCode,
	}

	if resp.Error != nil {
		result.Failure = FailureFetch
		result.Err = resp.Error
		return result
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Failure = FailureFetch
		result.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		return result
	}

	temperature, err := s.safeExtract(resp.Body)
	if err != nil {
		result.Failure = FailureParse
		result.Err = err
		return result
	}

	result.TemperatureC = temperature
	return result
}

// safeExtract calls the extractor with panic recovery.
// If the extractor panics, it logs the full stack trace with a
// correlation ID and returns an error containing the ID.
func (s *Scheduler) safeExtract(body []byte) (temperature float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			stack := debug.Stack()

			// log full context server-side for debugging
			s.logger.Error("extractor panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(stack),
			)

			temperature = 0
			err = fmt.Errorf("extractor panic (correlation_id: %s)", correlationID)
		}
	}()
	return s.source.Extractor(body)
}
