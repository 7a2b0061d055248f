package graph

import (
	"sync"

	"docgraph/internal/domain"
)

// CacheStats reports the parse cache size
type CacheStats struct {
	ParsedFileCount int `json:"parsed_file_count"`
}

type cacheEntry struct {
	fingerprint domain.Fingerprint
	result      domain.ParseResult
}

// ParseCache memoizes parse results keyed by path and fingerprint.
// A hit requires the supplied fingerprint to exactly match the stored
// one; any mismatch is a miss and the caller re-reads the file.
//
// Guarded by a mutex: the builder and a backlink scan may touch the
// cache from separate goroutines.
type ParseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewParseCache creates an empty cache
func NewParseCache() *ParseCache {
	return &ParseCache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached result for path when the fingerprint matches
func (c *ParseCache) Get(path string, fp domain.Fingerprint) (domain.ParseResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok || entry.fingerprint != fp {
		return domain.ParseResult{}, false
	}
	return entry.result, true
}

// Put stores a parse result, replacing any stale entry for path
func (c *ParseCache) Put(path string, fp domain.Fingerprint, result domain.ParseResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{fingerprint: fp, result: result}
}

// Invalidate removes the entries for the given paths
func (c *ParseCache) Invalidate(paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		delete(c.entries, p)
	}
}

// Clear removes every entry
func (c *ParseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Stats returns the current cache statistics
func (c *ParseCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{ParsedFileCount: len(c.entries)}
}
