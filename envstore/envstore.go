// Package envstore provides the key/value environment store used by enver.
// The process environment is one implementation; an isolated in-memory map is
// the other, so callers (and tests) can run a Manager without touching os.Environ.
package envstore

import (
	"os"
	"sync"
)

// Store is a string-to-string environment mapping.
type Store interface {
	// Get returns the value bound to key, or "" when key is absent.
	Get(key string) string
	// Has reports whether key is present, even if its value is empty.
	Has(key string) bool
	// Set binds key to value, replacing any previous binding.
	Set(key, value string) error
}

// OS returns a Store backed by the process environment.
func OS() Store { return osStore{} }

type osStore struct{}

func (osStore) Get(key string) string { return os.Getenv(key) }

func (osStore) Has(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func (osStore) Set(key, value string) error { return os.Setenv(key, value) }

// MapStore is an in-memory Store safe for concurrent use.
type MapStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// Map returns a MapStore seeded with a copy of seed (which may be nil).
func Map(seed map[string]string) *MapStore {
	m := make(map[string]string, len(seed))
	for k, v := range seed {
		m[k] = v
	}
	return &MapStore{m: m}
}

func (s *MapStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[key]
}

func (s *MapStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[key]
	return ok
}

func (s *MapStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Snapshot returns a copy of the current bindings.
func (s *MapStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}
