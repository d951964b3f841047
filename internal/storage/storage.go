// Package storage provides the data persistence layer for the budget.
// Everything is kept as named blobs behind a small key-value interface.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/config"
)

// Store is a key-value store of opaque blobs.
type Store interface {
	// Get returns the value stored under key, or an error wrapping
	// common.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string][]byte) error
	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Open creates the store selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case config.BackendBolt:
		return NewBoltStore(cfg.Path)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, cfg.Backend)
	}
}

// LoadAll fetches the given keys. Keys that are not stored are left out of
// the result.
func LoadAll(ctx context.Context, s Store, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for _, key := range keys {
		value, err := s.Get(ctx, key)
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", key, err)
		}
		out[key] = value
	}
	return out, nil
}
