// Package store provides storage for the current display state.
//
// This package contains internal implementation details and is not part
// of the public API. It may change without notice.
//
// The store holds exactly one DisplayState (the color currently
// committed to the strip plus the sample it was derived from) and
// offers a pub/sub mechanism so the status server can push live
// updates to connected clients.
package store
