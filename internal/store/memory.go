package store

import (
	"sync"
	"time"

	"github.com/liveprogress/expectancy/pkg/types"
)

// Entry is a table together with its origin and the time it was stored.
type Entry struct {
	Table     types.Table
	Source    string
	UpdatedAt time.Time
}

// Memory is a thread-safe holder of the most recent table.
type Memory struct {
	mu    sync.RWMutex
	entry *Entry
	now   func() time.Time // injectable for deterministic tests
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// Put replaces the held table. Callers must not modify t after calling Put.
func (m *Memory) Put(t types.Table, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry = &Entry{Table: t, Source: source, UpdatedAt: m.now()}
}

// Get returns the held entry and whether one has been stored.
func (m *Memory) Get() (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.entry == nil {
		return Entry{}, false
	}
	return *m.entry, true
}
