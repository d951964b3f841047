package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Veraticus/smart-budget/internal/common"
)

// MemoryStore implements Store in process memory. Nothing survives Close.
type MemoryStore struct {
	data   map[string][]byte
	mu     sync.RWMutex
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Close discards the stored data.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateGet(ctx, key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, common.ErrStoreClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, common.ErrNotFound)
	}
	return append([]byte{}, v...), nil
}

// Set implements Store.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validateSet(ctx, key, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrStoreClosed
	}
	s.data[key] = append([]byte{}, value...)
	return nil
}

// SetMany implements Store.
func (s *MemoryStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys, err := validateBatch(ctx, entries)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrStoreClosed
	}
	for _, key := range keys {
		s.data[key] = append([]byte{}, entries[key]...)
	}
	return nil
}

// Keys implements Store.
func (s *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, common.ErrStoreClosed
	}
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
