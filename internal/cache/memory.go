package cache

import (
	"context"
	"sync"

	"github.com/verbumdei/lectio/internal/liturgy"
)

// Memory is the in-process cache tier. Entries live until the process
// exits. The map is mutex-guarded so the tier is safe under a
// multi-threaded host.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]liturgy.DailyReadings
}

// NewMemory constructs an empty in-memory tier.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]liturgy.DailyReadings),
	}
}

// Name identifies the tier.
func (m *Memory) Name() string {
	return "memory"
}

// Get returns a copy of the cached record, if present.
func (m *Memory) Get(_ context.Context, key string) (liturgy.DailyReadings, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	if !ok {
		return liturgy.DailyReadings{}, false, nil
	}
	return value.Clone(), true, nil
}

// Put stores a copy of the record.
func (m *Memory) Put(_ context.Context, key string, value liturgy.DailyReadings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value.Clone()
	return nil
}

// Len reports the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
