package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// stubLLM returns canned responses without network calls.
type stubLLM struct {
	text       string
	structured string // JSON payload for GenerateStructured
	err        error
	lastSystem string
	lastUser   string
}

func (s *stubLLM) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	return s.text, s.err
}

func (s *stubLLM) GenerateStructured(_ context.Context, systemPrompt, userPrompt, _ string, out any) error {
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.structured), out)
}

func (s *stubLLM) ModelName() string { return "stub" }

func TestRouter_Analyze(t *testing.T) {
	llm := &stubLLM{structured: `{"query": "workplace of Harrison", "target": "harrison"}`}

	r, err := NewRouter(llm, []Target{
		{Key: "HARRISON", Description: "facts about Harrison"},
		{Key: "ANKUSH", Description: "facts about Ankush"},
	})
	if err != nil {
		t.Fatal(err)
	}

	analyzed, err := r.Analyze(context.Background(), "where did Harrison work")
	if err != nil {
		t.Fatal(err)
	}

	if analyzed.RewrittenQuery != "workplace of Harrison" {
		t.Errorf("unexpected rewritten query: %q", analyzed.RewrittenQuery)
	}
	if analyzed.Target != "HARRISON" {
		t.Errorf("expected target normalized to HARRISON, got %q", analyzed.Target)
	}
	if !strings.Contains(llm.lastSystem, "ANKUSH: facts about Ankush") {
		t.Errorf("expected targets listed in prompt, got: %s", llm.lastSystem)
	}
}

func TestRouter_EmptyRewriteFallsBackToOriginal(t *testing.T) {
	llm := &stubLLM{structured: `{"query": "", "target": "DOCS"}`}

	r, err := NewRouter(llm, []Target{{Key: "DOCS", Description: "docs"}})
	if err != nil {
		t.Fatal(err)
	}

	analyzed, err := r.Analyze(context.Background(), "original question")
	if err != nil {
		t.Fatal(err)
	}
	if analyzed.RewrittenQuery != "original question" {
		t.Errorf("expected fallback to original query, got %q", analyzed.RewrittenQuery)
	}
}

func TestRouter_RequiresTargets(t *testing.T) {
	if _, err := NewRouter(&stubLLM{}, nil); err == nil {
		t.Error("expected error for empty target list")
	}
	if _, err := NewRouter(nil, []Target{{Key: "A"}}); err == nil {
		t.Error("expected error for nil LLM")
	}
}

func TestRouter_PropagatesAnalyzerFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("capacity exceeded")}

	r, err := NewRouter(llm, []Target{{Key: "DOCS", Description: "docs"}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Analyze(context.Background(), "anything"); err == nil {
		t.Error("expected analyzer failure to propagate")
	}
}

func TestExpander_Expand(t *testing.T) {
	llm := &stubLLM{structured: `{"queries": ["how auth works", "authentication flow", "  ", "how does auth work"]}`}

	e := NewExpander(llm, 3)
	exp, err := e.Expand(context.Background(), "how does auth work")
	if err != nil {
		t.Fatal(err)
	}

	if exp.Queries[0] != "how does auth work" {
		t.Errorf("expected original query first, got %q", exp.Queries[0])
	}
	// Blank entries and case-insensitive duplicates of the original are dropped.
	for _, q := range exp.Queries[1:] {
		if q == "" || strings.EqualFold(q, exp.Original) {
			t.Errorf("expected filtered paraphrases, got %q", q)
		}
	}
	if len(exp.Queries) != 3 {
		t.Errorf("expected 3 queries, got %d: %v", len(exp.Queries), exp.Queries)
	}
}

func TestExpander_FallsBackOnError(t *testing.T) {
	llm := &stubLLM{err: errors.New("rate limited")}

	e := NewExpander(llm, 3)
	exp, err := e.Expand(context.Background(), "my query")
	if err != nil {
		t.Fatal(err)
	}
	if len(exp.Queries) != 1 || exp.Queries[0] != "my query" {
		t.Errorf("expected original query only, got %v", exp.Queries)
	}
}

func TestDecomposer_Decompose(t *testing.T) {
	llm := &stubLLM{structured: `{"questions": ["what is X", "what is Y"]}`}

	d := NewDecomposer(llm)
	dec, err := d.Decompose(context.Background(), "compare X and Y")
	if err != nil {
		t.Fatal(err)
	}
	if len(dec.SubQuestions) != 2 {
		t.Fatalf("expected 2 sub-questions, got %v", dec.SubQuestions)
	}
	if dec.Original != "compare X and Y" {
		t.Errorf("expected original preserved, got %q", dec.Original)
	}
}

func TestDecomposer_EmptyResultKeepsOriginal(t *testing.T) {
	llm := &stubLLM{structured: `{"questions": []}`}

	d := NewDecomposer(llm)
	dec, err := d.Decompose(context.Background(), "atomic question")
	if err != nil {
		t.Fatal(err)
	}
	if len(dec.SubQuestions) != 1 || dec.SubQuestions[0] != "atomic question" {
		t.Errorf("expected original as only sub-question, got %v", dec.SubQuestions)
	}
}

func TestStepBack_Rewrite(t *testing.T) {
	llm := &stubLLM{text: "what is the general principle?\n"}

	s := NewStepBack(llm)
	rewritten, err := s.Rewrite(context.Background(), "detailed question")
	if err != nil {
		t.Fatal(err)
	}
	if rewritten != "what is the general principle?" {
		t.Errorf("unexpected rewrite: %q", rewritten)
	}
}

func TestStructurer_Structure(t *testing.T) {
	llm := &stubLLM{structured: `{"query": "rag tutorials", "earliest_year": 2023, "latest_year": 2024}`}

	s := NewStructurer(llm)
	sq, err := s.Structure(context.Background(), "rag tutorials published after 2023")
	if err != nil {
		t.Fatal(err)
	}
	if sq.Query != "rag tutorials" {
		t.Errorf("unexpected query: %q", sq.Query)
	}
	if sq.EarliestYear != 2023 || sq.LatestYear != 2024 {
		t.Errorf("unexpected year bounds: %d-%d", sq.EarliestYear, sq.LatestYear)
	}
	if sq.Author != "" {
		t.Errorf("expected unconstrained author to stay empty, got %q", sq.Author)
	}
}
