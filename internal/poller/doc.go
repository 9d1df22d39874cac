// Package poller provides the HTTP weather polling engine for glowcast.
//
// This package contains internal implementation details and is not part
// of the public API. It may change without notice.
//
// The package provides:
//   - Client: HTTP client wrapper with connection reuse, a response
//     size limit, and per-request timeouts
//   - Scheduler: fixed-cadence polling of a single weather source with
//     results emitted on a channel
package poller
