package port

import (
	"context"

	"queryrouter/internal/domain"
)

// Retriever defines the interface for searching a document collection.
type Retriever interface {
	// Retrieve returns the documents most relevant to the query text.
	Retrieve(ctx context.Context, query string) ([]domain.Document, error)
}

// RetrieverFunc adapts a function to the Retriever interface.
type RetrieverFunc func(ctx context.Context, query string) ([]domain.Document, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	return f(ctx, query)
}
