// Package storage provides JSON key/value storage with masked failures.
//
// Every value is JSON-encoded on write and decoded on read. Failures are
// logged and reported as a false return; they are never surfaced as errors
// so callers treat a broken store the same as an empty one.
package storage

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/krcglobal/gbms/internal/log"
)

// Fixed keys shared by the session and the app shell.
const (
	KeyToken            = "gbms_token"
	KeyUser             = "gbms_user"
	KeySidebarCollapsed = "sidebar_collapsed"
)

// Store is a string-keyed store of JSON values.
//
// Implementations must be safe for concurrent use within one process.
// There is no cross-process locking.
type Store interface {
	// Get decodes the value stored under key into dst.
	// Returns false if the key is absent or the value cannot be decoded.
	// An absent key leaves dst untouched.
	Get(key string, dst any) bool

	// Set encodes v and stores it under key. Returns false on failure.
	Set(key string, v any) bool

	// Remove deletes key. Removing an absent key succeeds.
	Remove(key string) bool

	// Clear deletes every key.
	Clear() bool

	// Keys returns the stored keys in sorted order.
	Keys() []string
}

// GetDefault returns the value under key, or def when the key is absent or
// unreadable.
func GetDefault[T any](s Store, key string, def T) T {
	var out T
	if !s.Get(key, &out) {
		return def
	}
	return out
}

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
	logger *log.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *log.Logger) *MemoryStore {
	return &MemoryStore{
		values: make(map[string]json.RawMessage),
		logger: log.OrDefault(logger),
	}
}

// Get implements Store.
func (m *MemoryStore) Get(key string, dst any) bool {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return decode(m.logger, key, raw, dst)
}

// Set implements Store.
func (m *MemoryStore) Set(key string, v any) bool {
	raw, ok := encode(m.logger, key, v)
	if !ok {
		return false
	}

	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
	return true
}

// Remove implements Store.
func (m *MemoryStore) Remove(key string) bool {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return true
}

// Clear implements Store.
func (m *MemoryStore) Clear() bool {
	m.mu.Lock()
	m.values = make(map[string]json.RawMessage)
	m.mu.Unlock()
	return true
}

// Keys implements Store.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.values)
}

func encode(logger *log.Logger, key string, v any) (json.RawMessage, bool) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Warn("storage: failed to encode value", "key", key, "error", err)
		return nil, false
	}
	return raw, true
}

func decode(logger *log.Logger, key string, raw json.RawMessage, dst any) bool {
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn("storage: failed to decode value", "key", key, "error", err)
		return false
	}
	return true
}

func sortedKeys(values map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
