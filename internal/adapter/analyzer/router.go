package analyzer

import (
	"context"
	"fmt"
	"strings"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// Target describes one retrieval backend the router may select.
type Target struct {
	Key         string
	Description string
}

// Router implements port.Analyzer with an LLM structured-output call: it
// rewrites the query for retrieval and picks the target backend to send it to.
type Router struct {
	llm     port.LLM
	targets []Target
}

func NewRouter(llm port.LLM, targets []Target) (*Router, error) {
	if llm == nil {
		return nil, fmt.Errorf("router requires an LLM")
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("router requires at least one target")
	}
	return &Router{llm: llm, targets: targets}, nil
}

type routeResult struct {
	Query  string `json:"query"`  // The query rewritten for similarity search
	Target string `json:"target"` // Key of the backend to search
}

// Analyze classifies and rewrites the query.
func (r *Router) Analyze(ctx context.Context, query string) (domain.AnalyzedQuery, error) {
	var sb strings.Builder
	sb.WriteString(`You are an expert at routing user questions to the correct data source.
Rewrite the question into a concise search query and pick exactly one target
from the list below. Output the target key verbatim.

Targets:
`)
	for _, t := range r.targets {
		fmt.Fprintf(&sb, "- %s: %s\n", t.Key, t.Description)
	}

	var out routeResult
	if err := r.llm.GenerateStructured(ctx, sb.String(), query, "route_query", &out); err != nil {
		return domain.AnalyzedQuery{}, fmt.Errorf("query analysis failed: %w", err)
	}

	rewritten := strings.TrimSpace(out.Query)
	if rewritten == "" {
		rewritten = query
	}

	return domain.AnalyzedQuery{
		RewrittenQuery: rewritten,
		Target:         strings.ToUpper(strings.TrimSpace(out.Target)),
	}, nil
}
