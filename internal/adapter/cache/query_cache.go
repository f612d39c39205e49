package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// QueryCache is an LRU cache with TTL for retrieval results. Entries also
// carry the index generation they were computed against; bumping the
// generation on ingest invalidates everything at once.
type QueryCache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	order    []string
	maxSize  int
	ttl      time.Duration
	indexGen uint64
}

type cacheEntry struct {
	docs      []domain.Document
	timestamp time.Time
	indexGen  uint64
}

func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(collection, query string) string {
	hash := sha256.Sum256([]byte(collection + "\x00" + query))
	return hex.EncodeToString(hash[:16])
}

func (c *QueryCache) Get(collection, query string) ([]domain.Document, bool) {
	c.mu.RLock()
	key := cacheKey(collection, query)
	entry, exists := c.entries[key]
	currentGen := c.indexGen
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.indexGen != currentGen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return entry.docs, true
}

func (c *QueryCache) Put(collection, query string, docs []domain.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(collection, query)

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{
			docs:      docs,
			timestamp: time.Now(),
			indexGen:  c.indexGen,
		}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{
		docs:      docs,
		timestamp: time.Now(),
		indexGen:  c.indexGen,
	}
	c.order = append(c.order, key)
}

// Invalidate drops all entries and bumps the index generation.
func (c *QueryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
	c.indexGen++
}

func (c *QueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedRetriever decorates a retriever with the query cache. The name keys
// the cache so distinct backends never share entries.
type CachedRetriever struct {
	name      string
	retriever port.Retriever
	cache     *QueryCache
}

func NewCachedRetriever(name string, retriever port.Retriever, cache *QueryCache) *CachedRetriever {
	return &CachedRetriever{
		name:      name,
		retriever: retriever,
		cache:     cache,
	}
}

func (r *CachedRetriever) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	if docs, hit := r.cache.Get(r.name, query); hit {
		return docs, nil
	}

	docs, err := r.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	r.cache.Put(r.name, query, docs)

	return docs, nil
}
