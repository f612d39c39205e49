package analyzer

import (
	"context"
	"fmt"
	"strings"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// Expander generates paraphrases of a query for multi-query retrieval.
type Expander struct {
	llm   port.LLM
	count int
}

func NewExpander(llm port.LLM, count int) *Expander {
	if count <= 0 {
		count = 3
	}
	return &Expander{llm: llm, count: count}
}

type expandResult struct {
	Queries []string `json:"queries"`
}

// Expand returns the original query plus up to count paraphrases.
// On LLM failure the original query alone is returned; expansion is an
// enhancement, not a prerequisite for retrieval.
func (e *Expander) Expand(ctx context.Context, query string) (domain.Expansion, error) {
	expansion := domain.Expansion{
		Original: query,
		Queries:  []string{query},
	}

	if e.llm == nil {
		return expansion, nil
	}

	systemPrompt := fmt.Sprintf(`You are a search query expansion assistant.
Given a user's question, generate %d alternative phrasings that might surface
different relevant documents. Vary the vocabulary and the level of detail.
Do not answer the question.`, e.count)

	var out expandResult
	if err := e.llm.GenerateStructured(ctx, systemPrompt, query, "expand_query", &out); err != nil {
		return expansion, nil
	}

	for _, q := range out.Queries {
		q = strings.TrimSpace(q)
		if q == "" || strings.EqualFold(q, query) {
			continue
		}
		expansion.Queries = append(expansion.Queries, q)
		if len(expansion.Queries) > e.count {
			break
		}
	}

	return expansion, nil
}
