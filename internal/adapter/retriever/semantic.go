package retriever

import (
	"context"
	"fmt"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// SemanticRetriever searches one vector store collection by embedding
// similarity.
type SemanticRetriever struct {
	embedder    port.Embedder
	vectorStore port.VectorStore
	collection  string
	topK        int
}

func NewSemanticRetriever(
	embedder port.Embedder,
	vectorStore port.VectorStore,
	collection string,
	topK int,
) *SemanticRetriever {
	if topK <= 0 {
		topK = 5
	}
	return &SemanticRetriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		topK:        topK,
	}
}

// Retrieve embeds the query and returns the most similar documents.
func (r *SemanticRetriever) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	if r.embedder == nil || r.vectorStore == nil {
		return nil, fmt.Errorf("semantic retrieval requires an embedder and a vector store")
	}

	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding returned empty result")
	}

	results, err := r.vectorStore.Search(r.collection, embeddings[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return toDocuments(results), nil
}

// Collection returns the collection this retriever searches.
func (r *SemanticRetriever) Collection() string {
	return r.collection
}

func toDocuments(results []port.VectorResult) []domain.Document {
	docs := make([]domain.Document, 0, len(results))
	for _, result := range results {
		docs = append(docs, domain.Document{
			ID:       result.ID,
			Content:  result.Content,
			Score:    result.Score,
			Metadata: result.Metadata,
		})
	}
	return docs
}
