// Package cache stores raw API responses keyed by a fingerprint of the
// normalized request. Expiry is lazy: staleness is checked on Get, never by
// background eviction. A corrupt or unreadable entry degrades to a miss,
// never to an error.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is the medium-independent cache contract. Implementations must be
// safe for concurrent use; concurrent Puts for the same fingerprint are
// last-writer-wins.
type Store interface {
	// Get returns the payload for a fingerprint, or false when absent or
	// stale.
	Get(fingerprint string) ([]byte, bool)
	// Put stores a payload. A non-positive ttl falls back to the store's
	// default; a store without a default keeps the entry forever.
	Put(fingerprint string, payload []byte, ttl time.Duration)
	// Invalidate removes a single entry.
	Invalidate(fingerprint string)
	// Clear removes every entry.
	Clear() error
}

// Fingerprint derives the cache key for a request from its endpoint and its
// normalized "key=value" parameters. Parameters are sorted, so equivalent
// requests issued with different parameter orders share a fingerprint.
func Fingerprint(endpoint string, params []string) string {
	sorted := make([]string, len(params))
	copy(sorted, params)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(endpoint + "?" + strings.Join(sorted, "&")))
	return hex.EncodeToString(sum[:])
}

// MemStore is an in-memory Store.
type MemStore struct {
	// DefaultTTL applies when Put is called without a positive ttl.
	// Zero means entries never expire.
	DefaultTTL time.Duration

	mu      sync.RWMutex
	entries map[string]memEntry
}

type memEntry struct {
	payload   []byte
	createdAt time.Time
	ttl       time.Duration
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(defaultTTL time.Duration) *MemStore {
	return &MemStore{DefaultTTL: defaultTTL, entries: map[string]memEntry{}}
}

func (m *MemStore) Get(fingerprint string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[fingerprint]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.ttl > 0 && time.Since(e.createdAt) > e.ttl {
		m.Invalidate(fingerprint)
		return nil, false
	}
	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, true
}

func (m *MemStore) Put(fingerprint string, payload []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.DefaultTTL
	}
	stored := make([]byte, len(payload))
	copy(stored, payload)
	m.mu.Lock()
	m.entries[fingerprint] = memEntry{payload: stored, createdAt: time.Now(), ttl: ttl}
	m.mu.Unlock()
}

func (m *MemStore) Invalidate(fingerprint string) {
	m.mu.Lock()
	delete(m.entries, fingerprint)
	m.mu.Unlock()
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	m.entries = map[string]memEntry{}
	m.mu.Unlock()
	return nil
}
