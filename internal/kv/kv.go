// Package kv is the durable key-value layer every manager reads and writes
// through. Values are JSON text; reads never fail, they fall back.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/meltforce/fitquest/internal/observability"
)

// Backend is a string-keyed, string-valued persistent store.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Store wraps a Backend with JSON encoding and fallback-on-corruption reads.
type Store struct {
	backend Backend
	log     *slog.Logger
}

// NewStore creates a Store over the given backend.
func NewStore(backend Backend, log *slog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Get decodes the value stored under key into a T. A missing key, an empty
// value, the literals "null" and "undefined", malformed JSON and backend read
// errors all yield fallback. Failures are logged, never returned.
func Get[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn("kv read failed, using fallback", "key", key, "error", err)
		observability.RecordDecodeFailure()
		return fallback
	}
	if !ok {
		return fallback
	}
	switch strings.TrimSpace(raw) {
	case "", "null", "undefined":
		return fallback
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.log.Warn("kv decode failed, using fallback", "key", key, "error", err)
		observability.RecordDecodeFailure()
		return fallback
	}
	return v
}

// Set JSON-encodes value and stores it under key.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Remove(ctx, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key in the namespace. Irreversible.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	s.log.Warn("store cleared")
	return nil
}

// Keys returns the sorted keys starting with prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	all, err := s.backend.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	var out []string
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
