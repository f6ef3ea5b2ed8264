package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds the in-memory cache when no capacity is configured.
const DefaultCapacity = 1024

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Cache backed by a thread-safe LRU. Expiry is
// checked lazily on read, so a stale entry occupies a slot until it is
// read or evicted.
type Memory struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

// NewMemory creates an in-memory cache holding at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewMemory(capacity int) (*Memory, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	entries, err := lru.New[string, memoryEntry](capacity)
	if err != nil {
		return nil, err
	}

	return &Memory{entries: entries, now: time.Now}, nil
}

// Ensure Memory implements the Cache interface
var _ Cache = (*Memory)(nil)

// Get implements Cache.Get.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	entry, ok := m.entries.Get(key)
	if !ok {
		return "", false
	}

	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.entries.Remove(key)
		return "", false
	}

	return entry.value, true
}

// Set implements Cache.Set.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return errors.New("cache key cannot be empty")
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.entries.Add(key, entry)
	return nil
}

// DeletePrefix implements Cache.DeletePrefix.
func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	for _, key := range m.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			m.entries.Remove(key)
		}
	}
	return nil
}
