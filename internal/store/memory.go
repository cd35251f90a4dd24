package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the serialized collections in a mutex-guarded map.
// Used by tests and single-process runs without external storage.
type MemoryStore struct {
	collections
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *MemoryStore {
	s := &MemoryStore{data: make(map[string][]byte)}
	s.collections = collections{kv: s}
	return s
}

func (s *MemoryStore) get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, nil
}

func (s *MemoryStore) put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[key] = cp
	return nil
}

// PutRaw writes an arbitrary value under a key, bypassing serialization.
// Tests use it to simulate corrupt persisted data.
func (s *MemoryStore) PutRaw(key string, data []byte) {
	_ = s.put(context.Background(), key, data)
}

func (s *MemoryStore) Close() {}
