package retriever

import (
	"context"
	"fmt"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// HyDERetriever searches with the embedding of a hypothetical answer instead
// of the question itself. Questions and answers live in different parts of
// embedding space; a plausible fake answer often lands closer to the real one.
type HyDERetriever struct {
	llm         port.LLM
	embedder    port.Embedder
	vectorStore port.VectorStore
	collection  string
	topK        int
}

func NewHyDERetriever(
	llm port.LLM,
	embedder port.Embedder,
	vectorStore port.VectorStore,
	collection string,
	topK int,
) *HyDERetriever {
	if topK <= 0 {
		topK = 5
	}
	return &HyDERetriever{
		llm:         llm,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		topK:        topK,
	}
}

func (r *HyDERetriever) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	if r.llm == nil || r.embedder == nil || r.vectorStore == nil {
		return nil, fmt.Errorf("HyDE requires an LLM, embedder, and vector store")
	}

	hypothetical, err := r.generateHypothetical(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate hypothetical: %w", err)
	}

	embeddings, err := r.embedder.Embed(ctx, []string{hypothetical})
	if err != nil {
		return nil, fmt.Errorf("failed to embed hypothetical: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding generated")
	}

	results, err := r.vectorStore.Search(r.collection, embeddings[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return toDocuments(results), nil
}

func (r *HyDERetriever) generateHypothetical(ctx context.Context, query string) (string, error) {
	systemPrompt := `Write a short passage that plausibly answers the question,
as it might appear in a reference document. Keep it concise (100-200 words).
Do not explain or hedge - just write the hypothetical passage.`

	userPrompt := fmt.Sprintf("Question: %s\n\nWrite a hypothetical passage that answers this:", query)

	return r.llm.Generate(ctx, systemPrompt, userPrompt)
}

// RetrieveWithFallback retries with the plain query embedding when the HyDE
// path fails or comes back empty.
func (r *HyDERetriever) RetrieveWithFallback(ctx context.Context, query string) ([]domain.Document, error) {
	docs, err := r.Retrieve(ctx, query)
	if err == nil && len(docs) > 0 {
		return docs, nil
	}

	plain := NewSemanticRetriever(r.embedder, r.vectorStore, r.collection, r.topK)
	return plain.Retrieve(ctx, query)
}
