package strip

import (
	"fmt"
	"sync"
)

// Memory is an in-memory [Strip] implementation.
//
// Memory keeps a pending and a committed frame. Fill writes the pending
// frame only; Show copies pending to committed in one step, so readers
// via [Memory.Pixels] never observe a partially applied update.
//
// Memory is used as the "memory" driver in configuration and as the
// readback strip in tests. Unlike hardware drivers it is safe for
// concurrent use, since tests read pixels while the scheduler writes.
type Memory struct {
	mu        sync.RWMutex
	pending   []RGB
	committed []RGB
	shows     int
	closed    bool
}

// NewMemory creates an in-memory strip with the given pixel count.
// All pixels start black.
func NewMemory(pixels int) *Memory {
	return &Memory{
		pending:   make([]RGB, pixels),
		committed: make([]RGB, pixels),
	}
}

// Fill stages the color on every pixel of the pending frame.
func (m *Memory) Fill(c RGB) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("strip is closed")
	}
	for i := range m.pending {
		m.pending[i] = c
	}
	return nil
}

// Show commits the pending frame.
func (m *Memory) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("strip is closed")
	}
	copy(m.committed, m.pending)
	m.shows++
	return nil
}

// Close marks the strip closed. Subsequent Fill and Show calls fail.
// Safe to call multiple times.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Pixels returns a snapshot of the committed frame.
// The returned slice is a copy; modifying it does not affect the strip.
func (m *Memory) Pixels() []RGB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make([]RGB, len(m.committed))
	copy(cp, m.committed)
	return cp
}

// Shows returns the number of committed frames. Useful in tests for
// asserting that an update happened (or did not).
func (m *Memory) Shows() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shows
}
