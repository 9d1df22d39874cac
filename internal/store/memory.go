package store

import (
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
//
// MemoryStore provides thread-safe storage with a publish-subscribe
// mechanism for real-time updates. It holds a single DisplayState; a
// new update replaces the previous one, matching the system invariant
// that only the latest sample drives the strip.
//
// Subscribers receive updates via buffered channels (buffer size 16).
// Updates are sent non-blocking; if a subscriber's buffer is full, the
// update is dropped for that subscriber to prevent blocking the poll
// loop.
type MemoryStore struct {
	mu      sync.RWMutex
	current DisplayState
	set     bool

	subMu       sync.RWMutex
	subscribers map[chan DisplayState]struct{}
}

// NewMemoryStore creates a new in-memory [Store] implementation.
//
// The store is immediately ready for use. No cleanup is required when done.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subscribers: make(map[chan DisplayState]struct{}),
	}
}

// Update replaces the current [DisplayState] and notifies all subscribers.
func (m *MemoryStore) Update(state DisplayState) {
	m.mu.Lock()
	m.current = state
	m.set = true
	m.mu.Unlock()

	m.notifySubscribers(state)
}

// Current returns the stored display state.
// ok is false until the first Update.
func (m *MemoryStore) Current() (DisplayState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.set
}

// Subscribe creates a new subscription and returns a channel for
// receiving updates.
//
// The returned channel has a buffer of 16 messages. If the buffer
// fills (slow consumer), new updates are dropped for this subscriber.
//
// Caller must call [MemoryStore.Unsubscribe] when done to prevent
// resource leaks.
func (m *MemoryStore) Subscribe() <-chan DisplayState {
	ch := make(chan DisplayState, 16)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// After calling Unsubscribe, the channel will be closed and no further
// updates will be sent. Safe to call multiple times or with an unknown
// channel.
func (m *MemoryStore) Unsubscribe(ch <-chan DisplayState) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	// find and delete the channel (need to convert to the right type)
	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the state to all active subscribers.
//
// This is non-blocking: if a subscriber's channel buffer is full, the
// message is dropped for that subscriber rather than blocking the
// update path.
func (m *MemoryStore) notifySubscribers(state DisplayState) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- state:
		default:
			// subscriber is slow, drop the message
		}
	}
}
