package usecase

import (
	"context"
	"fmt"
	"strings"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// Answerer generates a grounded answer from retrieved documents.
type Answerer struct {
	llm port.LLM
}

func NewAnswerer(llm port.LLM) *Answerer {
	return &Answerer{llm: llm}
}

// Answer asks the LLM to answer the question using only the given documents.
// With no documents it declines rather than letting the model freewheel.
func (a *Answerer) Answer(ctx context.Context, question string, docs []domain.Document) (string, error) {
	if a.llm == nil {
		return "", fmt.Errorf("answering requires an LLM")
	}
	if len(docs) == 0 {
		return "No relevant documents were found for this question.", nil
	}

	var sb strings.Builder
	sb.WriteString("Context:\n")
	for i, doc := range docs {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, doc.Content)
	}
	fmt.Fprintf(&sb, "\nQuestion: %s", question)

	systemPrompt := `Answer the question using ONLY the provided context. Cite
passages by their [number]. If the context does not contain the answer, say so.`

	return a.llm.Generate(ctx, systemPrompt, sb.String())
}
