package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/erraggy/schemagen/internal/options"
	"github.com/erraggy/schemagen/schema"
)

// bundleInput represents the two ways a schema bundle can be provided to a tool.
// Exactly one of File or Content must be set.
type bundleInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a schema bundle on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline schema bundle content (JSON or YAML)"`
}

// cacheEntry holds a decoded bundle with LRU ordering and TTL expiry.
type cacheEntry struct {
	bundle    *schema.Bundle
	insertAt  time.Time
	expiresAt time.Time
}

// bundleCacheStore provides a session-scoped cache for decoded bundles.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. Generation never modifies a bundle, so cached values are
// shared between calls.
type bundleCacheStore struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
}

var bundleCache = &bundleCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached bundle or nil. Expired entries are lazily removed.
func (c *bundleCacheStore) get(key string) *schema.Bundle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.bundle
	}
	return nil
}

// put stores a bundle, evicting the oldest entry if at capacity.
func (c *bundleCacheStore) put(key string, b *schema.Bundle, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{bundle: b, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// reset clears all cached entries. Used in tests.
func (c *bundleCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *bundleCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key of the input, or "" when it cannot be cached.
func (b bundleInput) cacheKey() string {
	switch {
	case b.File != "":
		absPath, err := filepath.Abs(b.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case b.Content != "":
		h := sha256.Sum256([]byte(b.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve decodes the bundle from whichever input was provided.
func (b bundleInput) resolve() (*schema.Bundle, error) {
	if err := options.ValidateSingleInputSource(b.File != "", b.Content != ""); err != nil {
		return nil, fmt.Errorf("exactly one of file or content must be provided: %w", err)
	}
	if int64(len(b.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content exceeds maximum size of %d bytes", cfg.MaxInlineSize)
	}

	key := ""
	if cfg.CacheEnabled {
		key = b.cacheKey()
		if key != "" {
			if cached := bundleCache.get(key); cached != nil {
				return cached, nil
			}
		}
	}

	var (
		bundle *schema.Bundle
		err    error
	)
	if b.File != "" {
		bundle, err = schema.ParseFile(b.File)
	} else {
		bundle, err = schema.ParseBytes([]byte(b.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		bundleCache.put(key, bundle, cfg.CacheTTL)
	}
	return bundle, nil
}
