// Package kvstore provides the small string key-value store the client uses
// to persist its session and cached search history. Absence of a key is
// normal operation, never an error.
package kvstore

import (
	"sync"

	"github.com/goccy/go-json"
)

// Store is the persistence contract of the client. All values are opaque
// strings; callers layer JSON on top where they need structure.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases underlying resources.
	Close() error
}

// GetJSON reads key from s and unmarshals it into v. It returns false when
// the key is absent or holds a value that does not parse; corrupt data is
// treated as absence.
func GetJSON(s Store, key string, v any) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

// Mem is an in-memory Store used by tests and as a fallback when no data
// directory is available.
type Mem struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{values: make(map[string]string)}
}

func (m *Mem) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Mem) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Mem) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Mem) Close() error { return nil }
