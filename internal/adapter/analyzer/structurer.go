package analyzer

import (
	"context"
	"fmt"
	"strings"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// Structurer extracts a typed search filter from natural language, letting
// callers apply metadata constraints the raw text only implies.
type Structurer struct {
	llm port.LLM
}

func NewStructurer(llm port.LLM) *Structurer {
	return &Structurer{llm: llm}
}

// Structure converts a question into a StructuredQuery. Fields the question
// does not constrain are left at their zero values.
func (s *Structurer) Structure(ctx context.Context, query string) (domain.StructuredQuery, error) {
	if s.llm == nil {
		return domain.StructuredQuery{}, fmt.Errorf("structurer requires an LLM")
	}

	systemPrompt := `Convert the user's question into a database search request.
"query" is the text to similarity-search for. Fill "author", "earliest_year"
and "latest_year" only when the question explicitly constrains them; otherwise
leave them empty or zero. Do not invent constraints.`

	var out domain.StructuredQuery
	if err := s.llm.GenerateStructured(ctx, systemPrompt, query, "structure_query", &out); err != nil {
		return domain.StructuredQuery{}, fmt.Errorf("query structuring failed: %w", err)
	}

	if strings.TrimSpace(out.Query) == "" {
		out.Query = query
	}

	return out, nil
}
