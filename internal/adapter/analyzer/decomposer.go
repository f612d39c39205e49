package analyzer

import (
	"context"
	"fmt"
	"strings"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// Decomposer splits a compound question into independently answerable
// sub-questions.
type Decomposer struct {
	llm port.LLM
}

func NewDecomposer(llm port.LLM) *Decomposer {
	return &Decomposer{llm: llm}
}

type decomposeResult struct {
	Questions []string `json:"questions"`
}

// Decompose returns the sub-questions of a compound question. A simple
// question comes back as a single-element decomposition.
func (d *Decomposer) Decompose(ctx context.Context, query string) (domain.Decomposition, error) {
	if d.llm == nil {
		return domain.Decomposition{}, fmt.Errorf("decomposer requires an LLM")
	}

	systemPrompt := `Break the user's question into the minimal set of standalone
sub-questions that must each be answered to answer the whole. Each sub-question
must be understandable without the others. If the question is already atomic,
return it as the only sub-question.`

	var out decomposeResult
	if err := d.llm.GenerateStructured(ctx, systemPrompt, query, "decompose_query", &out); err != nil {
		return domain.Decomposition{}, fmt.Errorf("decomposition failed: %w", err)
	}

	dec := domain.Decomposition{Original: query}
	for _, q := range out.Questions {
		if q = strings.TrimSpace(q); q != "" {
			dec.SubQuestions = append(dec.SubQuestions, q)
		}
	}
	if len(dec.SubQuestions) == 0 {
		dec.SubQuestions = []string{query}
	}

	return dec, nil
}
