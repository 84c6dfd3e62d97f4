// Package cache provides the layered store backing the stopword lexicon:
// a process-local memory layer in front of a persistent disk layer, so a
// remote lexicon is fetched at most once per TTL window.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching lexicon payloads.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a lexicon source (URL or path).
func Key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return "sentistream:lexicon:v1:" + hex.EncodeToString(hash[:])
}
