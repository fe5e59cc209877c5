// Resepku - Ingredient-Based Recipe Recommendation
// Copyright 2026 Adi Darmawan (adidarmawan)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/adidarmawan/resepku

package embedding

import (
	"context"
	"sync"
	"time"
)

// cacheEntry is a cached vector with expiration.
type cacheEntry struct {
	vector    []float64
	expiresAt time.Time
}

// CacheStats tracks cache performance.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// CachedEmbedder memoizes vectors from an inner Embedder with a TTL.
// Users tend to repeat ingredient queries, and corpus vectors are
// embedded once at startup, so a small TTL cache removes most repeat
// calls to HTTP providers.
//
// Safe for concurrent use.
type CachedEmbedder struct {
	inner Embedder
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
	stats   CacheStats
}

// NewCachedEmbedder wraps inner with a TTL cache. A ttl <= 0 defaults
// to 5 minutes.
func NewCachedEmbedder(inner Embedder, ttl time.Duration) *CachedEmbedder {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedEmbedder{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Name reports the inner provider name.
func (c *CachedEmbedder) Name() string {
	return c.inner.Name()
}

// Embed returns the cached vector for text, or embeds and caches it.
// Errors are never cached.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if vec, ok := c.get(text); ok {
		return vec, nil
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.set(text, vec)
	return vec, nil
}

// Stats returns a snapshot of cache counters.
func (c *CachedEmbedder) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

func (c *CachedEmbedder) get(key string) ([]float64, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.mu.Lock()
		c.stats.Misses++
		c.mu.Unlock()
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.stats.Misses++
		c.stats.Evictions++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()

	// Callers must not mutate the shared backing array.
	return entry.vector, true
}

func (c *CachedEmbedder) set(key string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		vector:    vec,
		expiresAt: time.Now().Add(c.ttl),
	}
}
