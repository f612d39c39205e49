package store

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"queryrouter/internal/port"
)

var bucketCollections = []byte("collections")

// BoltVectorStore implements port.VectorStore using BoltDB for persistence.
// Vectors are grouped into named collections, one nested bucket each.
// Search is brute-force cosine over an in-memory copy of the vectors.
type BoltVectorStore struct {
	db        *bbolt.DB
	dimension int
	mu        sync.RWMutex
	vectors   map[string]map[string]vectorEntry // collection -> id -> entry
}

type vectorEntry struct {
	vector   []float32
	content  string
	metadata map[string]string
}

type storedVector struct {
	Vector   []float32         `json:"v"`
	Content  string            `json:"c,omitempty"`
	Metadata map[string]string `json:"m,omitempty"`
}

// NewBoltVectorStore opens (or creates) a BoltDB-backed vector store.
func NewBoltVectorStore(path string, dimension int) (*BoltVectorStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCollections)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create collections bucket: %w", err)
	}

	s := &BoltVectorStore{
		db:        db,
		dimension: dimension,
		vectors:   make(map[string]map[string]vectorEntry),
	}

	if err := s.loadVectors(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load vectors: %w", err)
	}

	return s, nil
}

// loadVectors loads every collection from BoltDB into memory.
func (s *BoltVectorStore) loadVectors() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketCollections)
		if root == nil {
			return nil
		}

		return root.ForEach(func(name, value []byte) error {
			if value != nil {
				return nil // Not a nested bucket
			}
			collection := string(name)
			b := root.Bucket(name)
			if b == nil {
				return nil
			}

			entries := make(map[string]vectorEntry)
			err := b.ForEach(func(k, v []byte) error {
				var stored storedVector
				if err := json.Unmarshal(v, &stored); err != nil {
					return nil // Skip corrupted entries
				}
				entries[string(k)] = vectorEntry{
					vector:   stored.Vector,
					content:  stored.Content,
					metadata: stored.Metadata,
				}
				return nil
			})
			if err != nil {
				return err
			}

			s.vectors[collection] = entries
			return nil
		})
	})
}

// Upsert adds or updates vectors in a collection.
func (s *BoltVectorStore) Upsert(collection string, items []port.VectorItem) error {
	if collection == "" {
		return fmt.Errorf("collection name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketCollections)
		if root == nil {
			return fmt.Errorf("collections bucket not found")
		}

		b, err := root.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}

		if s.vectors[collection] == nil {
			s.vectors[collection] = make(map[string]vectorEntry)
		}

		for _, item := range items {
			if len(item.Vector) != s.dimension {
				return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(item.Vector))
			}

			data, err := json.Marshal(storedVector{
				Vector:   item.Vector,
				Content:  item.Content,
				Metadata: item.Metadata,
			})
			if err != nil {
				return err
			}

			if err := b.Put([]byte(item.ID), data); err != nil {
				return err
			}

			s.vectors[collection][item.ID] = vectorEntry{
				vector:   item.Vector,
				content:  item.Content,
				metadata: item.Metadata,
			}
		}

		return nil
	})
}

// Search finds the k nearest vectors in a collection using cosine similarity.
func (s *BoltVectorStore) Search(collection string, query []float32, k int) ([]port.VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(query) != s.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(query))
	}

	return searchEntries(s.vectors[collection], query, k), nil
}

// Delete removes vectors by their IDs.
func (s *BoltVectorStore) Delete(collection string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketCollections)
		if root == nil {
			return nil
		}
		b := root.Bucket([]byte(collection))
		if b == nil {
			return nil
		}

		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
			delete(s.vectors[collection], id)
		}

		return nil
	})
}

// Count returns the number of vectors in a collection.
func (s *BoltVectorStore) Count(collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors[collection]), nil
}

func (s *BoltVectorStore) Close() error {
	return s.db.Close()
}

// searchEntries scores every entry against the query and returns the top k.
func searchEntries(entries map[string]vectorEntry, query []float32, k int) []port.VectorResult {
	if len(entries) == 0 {
		return nil
	}

	scored := make([]port.VectorResult, 0, len(entries))
	for id, entry := range entries {
		scored = append(scored, port.VectorResult{
			ID:       id,
			Score:    cosineSimilarity(query, entry.vector),
			Content:  entry.content,
			Metadata: entry.metadata,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
