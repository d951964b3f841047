package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"github.com/Veraticus/smart-budget/internal/common"
)

var bucketName = []byte("budget")

// BoltStore implements Store using a single BoltDB bucket.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb at %s: %w", path, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Get implements Store.
func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateGet(ctx, key); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("key %q: %w", key, common.ErrNotFound)
		}
		// Bolt values are only valid for the life of the transaction.
		value = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set implements Store.
func (s *BoltStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validateSet(ctx, key, value); err != nil {
		return err
	}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	}); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// SetMany implements Store. All entries go in one bolt transaction.
func (s *BoltStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	keys, err := validateBatch(ctx, entries)
	if err != nil {
		return err
	}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, key := range keys {
			if err := b.Put([]byte(key), entries[key]); err != nil {
				return fmt.Errorf("failed to set %q: %w", key, err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	return nil
}

// Keys implements Store.
func (s *BoltStore) Keys(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}
