package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSet checks the arguments shared by every backend's Set.
func validateSet(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("%w: value", ErrNilParameter)
	}
	return nil
}

// validateBatch checks every entry of a SetMany call and returns the keys in
// ascending order.
func validateBatch(ctx context.Context, entries map[string][]byte) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for key, value := range entries {
		if err := validateSet(ctx, key, value); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// validateGet checks the arguments shared by every backend's Get.
func validateGet(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return validateString(key, "key")
}
