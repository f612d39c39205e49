package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// VectorStore stores and searches embedding vectors grouped by collection.
type VectorStore interface {
	// Upsert adds or updates vectors in a collection.
	Upsert(collection string, items []VectorItem) error

	// Search finds the k nearest vectors to the query in a collection.
	Search(collection string, query []float32, k int) ([]VectorResult, error)

	// Delete removes vectors by their IDs.
	Delete(collection string, ids []string) error

	// Count returns the number of vectors in a collection.
	Count(collection string) (int, error)

	Close() error
}

// VectorItem represents a vector to be stored.
type VectorItem struct {
	ID       string
	Vector   []float32
	Content  string            // Original text the vector was computed from
	Metadata map[string]string // Optional metadata
}

// VectorResult represents a search result.
type VectorResult struct {
	ID       string
	Score    float64 // Similarity score (higher is better)
	Content  string
	Metadata map[string]string
}
