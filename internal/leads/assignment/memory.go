package assignment

import (
	"context"
	"sync"
)

// MemoryCounterStore is an in-process CounterStore. Used in tests and by the
// rule engine's manual demo runs, which must not advance the production
// rotation.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{counters: make(map[string]int64)}
}

func (s *MemoryCounterStore) Next(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.counters[key]
	s.counters[key] = v + 1
	return v, nil
}

var _ CounterStore = (*MemoryCounterStore)(nil)
