package store

import (
	"context"
	"sync"
)

// MemoryBlobStore keeps values in process memory. Nothing survives Close.
type MemoryBlobStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBlobStore creates an empty in-memory store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{values: make(map[string]string)}
}

func (s *MemoryBlobStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (s *MemoryBlobStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryBlobStore) Close() error {
	return nil
}
