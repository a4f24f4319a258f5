// Package memory provides an in-memory payroll.Store for tests and dev.
package memory

import (
	"context"
	"sync"

	"github.com/warp/payroll/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Store keeps encoded lines in append order.
type Store struct {
	mu    sync.RWMutex
	lines []string
	err   error
}

func New() *Store {
	return &Store{}
}

// NewWithLines seeds the store with raw lines, malformed or not.
func NewWithLines(lines ...string) *Store {
	return &Store{lines: append([]string(nil), lines...)}
}

// Append encodes r and adds it at the end. Append-only.
func (m *Store) Append(_ context.Context, r payroll.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.lines = append(m.lines, payroll.Encode(r))
	return nil
}

// ReadAll returns a copy of every stored line.
func (m *Store) ReadAll(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]string, len(m.lines))
	copy(result, m.lines)
	return result, nil
}

// FailAppends makes every following Append return err. Pass nil to recover.
func (m *Store) FailAppends(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Len returns the number of stored lines.
func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines)
}
