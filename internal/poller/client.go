package poller

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection reuse settings; one weather host is polled every few
// minutes, so the pool stays tiny
const (
	defaultMaxIdleConns    = 2
	defaultIdleConnTimeout = 60 * time.Second
)

// Response holds the result of an HTTP request made by [Client].
//
// Response captures the body (limited to 1MB), status code, latency,
// and any error that occurred.
type Response struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request.
	Latency time.Duration

	// Error contains any error that occurred during the request.
	// nil indicates the request completed (though the status code may
	// still indicate an error).
	Error error
}

// Client is an HTTP client wrapper for polling a weather endpoint.
//
// Client uses per-request timeouts via context rather than a global
// timeout, so a stalled peer cannot stall the process indefinitely.
// Response bodies are limited to 1MB; a weather payload is a few
// hundred bytes, so the cap is generous.
type Client struct {
	httpClient *http.Client
	dialer     *net.Dialer
}

// NewClient creates a new polling [Client].
//
// Timeouts are applied per-request via the context parameter in
// [Client.Fetch], not as a global client timeout. The underlying
// connection is reused between polls where the server allows it.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:      defaultMaxIdleConns,
				IdleConnTimeout:   defaultIdleConnTimeout,
				DisableKeepAlives: false,
			},
		},
		dialer: &net.Dialer{},
	}
}

// Fetch performs an HTTP GET and returns a structured [Response].
//
// The timeout is applied via context cancellation. The response body is
// read to completion (headers and body handled separately by net/http,
// never line-scanned) and the connection is released in every path.
//
// Fetch always returns a Response; errors are captured in the Error
// field rather than returned separately. This simplifies handling in
// the scheduler.
func (c *Client) Fetch(ctx context.Context, rawURL string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	limitedReader := io.LimitReader(resp.Body, maxResponseBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
		Error:      nil,
	}
}

// Ping checks TCP reachability of the host behind rawURL.
//
// Ping dials the URL's host:port and immediately closes the connection.
// It backs the startup connect phase, which blocks (retrying) until the
// network is up. The context bounds the dial.
func (c *Client) Ping(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := u.Host
	if u.Port() == "" {
		switch u.Scheme {
		case "https":
			host = net.JoinHostPort(u.Hostname(), "443")
		default:
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}

	conn, err := c.dialer.DialContext(ctx, "tcp", host)
	if err != nil {
		return fmt.Errorf("dial %s: %w", host, err)
	}
	return conn.Close()
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times. After Close, the client remains usable
// but new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
