package store

import (
	"fmt"
	"sync"

	"queryrouter/internal/port"
)

// MemoryVectorStore is an in-memory port.VectorStore for tests and
// ephemeral runs.
type MemoryVectorStore struct {
	mu        sync.RWMutex
	dimension int
	vectors   map[string]map[string]vectorEntry
}

func NewMemoryVectorStore(dimension int) *MemoryVectorStore {
	return &MemoryVectorStore{
		dimension: dimension,
		vectors:   make(map[string]map[string]vectorEntry),
	}
}

func (s *MemoryVectorStore) Upsert(collection string, items []port.VectorItem) error {
	if collection == "" {
		return fmt.Errorf("collection name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vectors[collection] == nil {
		s.vectors[collection] = make(map[string]vectorEntry)
	}

	for _, item := range items {
		if len(item.Vector) != s.dimension {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(item.Vector))
		}
		s.vectors[collection][item.ID] = vectorEntry{
			vector:   item.Vector,
			content:  item.Content,
			metadata: item.Metadata,
		}
	}

	return nil
}

func (s *MemoryVectorStore) Search(collection string, query []float32, k int) ([]port.VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) != s.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(query))
	}

	return searchEntries(s.vectors[collection], query, k), nil
}

func (s *MemoryVectorStore) Delete(collection string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.vectors[collection], id)
	}
	return nil
}

func (s *MemoryVectorStore) Count(collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors[collection]), nil
}

func (s *MemoryVectorStore) Close() error {
	return nil
}
