// Package cache provides the best-effort response cache used to
// deduplicate identical generation requests. Entries are content
// addressed: the key is a deterministic fingerprint of the request
// tuple, so identical inputs always map to the same entry regardless
// of call order. Cache failures never fail generation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// KeyPrefix namespaces every cache key so all entries can be flushed
// in bulk on deactivation or uninstall.
const KeyPrefix = "pagegen:"

// DefaultTTL is how long cached responses stay valid.
const DefaultTTL = time.Hour

// Cache is the expiring key-value store contract. Implementations must
// be safe for concurrent use; callers accept that two concurrent misses
// on the same key may both reach the provider.
type Cache interface {
	// Get returns the cached value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores value under key for the given TTL. A non-positive TTL
	// stores the value without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// keyPayload is the canonical serialization hashed into a cache key.
// encoding/json emits map keys in sorted order, which makes the
// fingerprint independent of option insertion order.
type keyPayload struct {
	Provider  string         `json:"provider"`
	Prompt    string         `json:"prompt"`
	WordCount int            `json:"word_count"`
	Options   map[string]any `json:"options,omitempty"`
}

// Key computes the deterministic fingerprint for a generation request.
func Key(providerID, prompt string, wordCount int, opts map[string]any) string {
	payload := keyPayload{
		Provider:  providerID,
		Prompt:    prompt,
		WordCount: wordCount,
		Options:   opts,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// Options carried something unserializable; fall back to the
		// formatted tuple so the key stays deterministic for this process.
		data = []byte(fmt.Sprintf("%s|%s|%d|%v", providerID, prompt, wordCount, opts))
	}

	sum := sha256.Sum256(data)
	return KeyPrefix + hex.EncodeToString(sum[:])
}
