// Package server provides the HTTP status server for glowcast.
//
// This package contains internal implementation details and is not part
// of the public API. It may change without notice.
package server
