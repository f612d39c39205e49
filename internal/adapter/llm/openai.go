package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"queryrouter/config"
)

// Client wraps an OpenAI-compatible chat API behind the port.LLM interface.
// Transient errors (rate limits, 5xx) are retried with exponential backoff;
// everything else is surfaced as-is.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxRetries  uint64
}

// New creates a chat client from configuration. The API key is read from the
// environment variable named in the config.
func New(cfg config.LLMConfig) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.APIKeyEnv)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	maxRetries := uint64(cfg.MaxRetries)
	if cfg.MaxRetries <= 0 {
		maxRetries = 3
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxRetries:  maxRetries,
	}, nil
}

// Generate generates text from a system and user prompt.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := c.complete(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model %s", c.model)
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateStructured generates a response constrained to the JSON schema
// derived from out, and unmarshals the response into out.
func (c *Client) GenerateStructured(ctx context.Context, systemPrompt, userPrompt, schemaName string, out any) error {
	schema, err := jsonschema.GenerateSchemaForType(out)
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	}

	resp, err := c.complete(ctx, req)
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from model %s", c.model)
	}

	if err := schema.Unmarshal(resp.Choices[0].Message.Content, out); err != nil {
		return fmt.Errorf("failed to unmarshal structured response: %w", err)
	}

	return nil
}

// ModelName returns the name of the model.
func (c *Client) ModelName() string {
	return c.model
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	var resp openai.ChatCompletionResponse

	op := func() error {
		var err error
		resp, err = c.client.CreateChatCompletion(ctx, req)
		if err != nil && !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return openai.ChatCompletionResponse{}, fmt.Errorf("chat completion failed: %w", err)
	}

	return resp, nil
}

// isTransient reports whether an API error is worth retrying.
func isTransient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	// Transport-level failure with no status code.
	return true
}
