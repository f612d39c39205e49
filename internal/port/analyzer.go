package port

import (
	"context"

	"queryrouter/internal/domain"
)

// Analyzer converts free-text input into a structured query.
type Analyzer interface {
	// Analyze classifies and rewrites the query for retrieval.
	Analyze(ctx context.Context, query string) (domain.AnalyzedQuery, error)
}
