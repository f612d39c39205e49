package port

import "context"

// LLM represents a language model for text generation.
type LLM interface {
	// Generate generates text from a system and user prompt.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateStructured generates a response constrained to the JSON schema
	// derived from out, and unmarshals it into out. schemaName labels the
	// schema for the provider.
	GenerateStructured(ctx context.Context, systemPrompt, userPrompt, schemaName string, out any) error

	// ModelName returns the name of the model.
	ModelName() string
}
