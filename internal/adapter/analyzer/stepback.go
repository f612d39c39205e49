package analyzer

import (
	"context"
	"fmt"
	"strings"

	"queryrouter/internal/port"
)

// StepBack rewrites a detailed question into a more generic one, which often
// matches background documents that the literal question would miss.
type StepBack struct {
	llm port.LLM
}

func NewStepBack(llm port.LLM) *StepBack {
	return &StepBack{llm: llm}
}

// Rewrite returns the step-back form of the question.
func (s *StepBack) Rewrite(ctx context.Context, query string) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("step-back requires an LLM")
	}

	systemPrompt := `You are an expert at world knowledge. Paraphrase the user's
question into a more generic step-back question that is easier to answer from
reference material. Output only the step-back question.`

	response, err := s.llm.Generate(ctx, systemPrompt, query)
	if err != nil {
		return "", fmt.Errorf("step-back rewrite failed: %w", err)
	}

	rewritten := strings.TrimSpace(response)
	if rewritten == "" {
		return query, nil
	}
	return rewritten, nil
}
