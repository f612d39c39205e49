package retriever

import (
	"context"
	"fmt"
	"sort"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// FusedRetriever runs every inner retriever on the same query and merges the
// result lists with weighted Reciprocal Rank Fusion.
// RRF score = sum of weight / (k + rank) over the lists a document appears in.
type FusedRetriever struct {
	retrievers []port.Retriever
	weights    []float64
	rrfK       int
	topK       int
}

func NewFusedRetriever(retrievers []port.Retriever, weights []float64, rrfK, topK int) (*FusedRetriever, error) {
	if len(retrievers) == 0 {
		return nil, fmt.Errorf("fusion requires at least one retriever")
	}
	if weights != nil && len(weights) != len(retrievers) {
		return nil, fmt.Errorf("got %d weights for %d retrievers", len(weights), len(retrievers))
	}
	if weights == nil {
		weights = make([]float64, len(retrievers))
		for i := range weights {
			weights[i] = 1
		}
	}
	if rrfK <= 0 {
		rrfK = 60 // Standard default
	}
	if topK <= 0 {
		topK = 5
	}

	return &FusedRetriever{
		retrievers: retrievers,
		weights:    weights,
		rrfK:       rrfK,
		topK:       topK,
	}, nil
}

// Retrieve queries the inner retrievers sequentially and fuses their results.
// A single failing retriever fails the whole call; partial results are not
// silently returned.
func (r *FusedRetriever) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	lists := make([][]domain.Document, 0, len(r.retrievers))
	for i, inner := range r.retrievers {
		docs, err := inner.Retrieve(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("retriever %d failed: %w", i, err)
		}
		lists = append(lists, docs)
	}

	fused := FuseRRF(lists, r.weights, r.rrfK)
	if len(fused) > r.topK {
		fused = fused[:r.topK]
	}
	return fused, nil
}

// FuseRRF merges ranked document lists with weighted Reciprocal Rank Fusion.
// Duplicate IDs accumulate score; the first occurrence's content wins.
func FuseRRF(lists [][]domain.Document, weights []float64, rrfK int) []domain.Document {
	scores := make(map[string]float64)
	docs := make(map[string]domain.Document)

	for i, list := range lists {
		weight := 1.0
		if i < len(weights) {
			weight = weights[i]
		}
		for rank, doc := range list {
			scores[doc.ID] += weight / float64(rrfK+rank+1)
			if _, exists := docs[doc.ID]; !exists {
				docs[doc.ID] = doc
			}
		}
	}

	fused := make([]domain.Document, 0, len(scores))
	for id, score := range scores {
		doc := docs[id]
		doc.Score = score
		fused = append(fused, doc)
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].ID < fused[j].ID
	})

	return fused
}
