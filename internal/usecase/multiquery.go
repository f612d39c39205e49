package usecase

import (
	"context"
	"fmt"

	"queryrouter/internal/adapter/retriever"
	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// Expander generates query paraphrases for multi-query retrieval.
type Expander interface {
	Expand(ctx context.Context, query string) (domain.Expansion, error)
}

// MultiQuery retrieves with every expansion of a query and fuses the ranked
// lists with reciprocal rank fusion, recovering documents a single phrasing
// would miss.
type MultiQuery struct {
	expander  Expander
	retriever port.Retriever
	rrfK      int
	topK      int
}

func NewMultiQuery(expander Expander, r port.Retriever, rrfK, topK int) (*MultiQuery, error) {
	if expander == nil || r == nil {
		return nil, fmt.Errorf("multi-query requires an expander and a retriever")
	}
	if rrfK <= 0 {
		rrfK = 60
	}
	if topK <= 0 {
		topK = 5
	}
	return &MultiQuery{
		expander:  expander,
		retriever: r,
		rrfK:      rrfK,
		topK:      topK,
	}, nil
}

// Retrieve expands the query, runs each phrasing sequentially, and returns
// the fused top results.
func (m *MultiQuery) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	expansion, err := m.expander.Expand(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query expansion failed: %w", err)
	}

	lists := make([][]domain.Document, 0, len(expansion.Queries))
	for _, q := range expansion.Queries {
		docs, err := m.retriever.Retrieve(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("retrieval for %q failed: %w", q, err)
		}
		lists = append(lists, docs)
	}

	fused := retriever.FuseRRF(lists, nil, m.rrfK)
	if len(fused) > m.topK {
		fused = fused[:m.topK]
	}
	return fused, nil
}
