package embedding

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"queryrouter/config"
)

// OpenAIEmbedder generates embeddings via an OpenAI-compatible API.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
	batchSize int
}

// NewOpenAIEmbedder creates an embedder from configuration. The API key is
// read from the environment variable named in the config.
func NewOpenAIEmbedder(cfg config.EmbeddingConfig) (*OpenAIEmbedder, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.APIKeyEnv)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	dimension := cfg.Dimension
	if dimension <= 0 {
		switch cfg.Model {
		case "text-embedding-3-large":
			dimension = 3072
		default:
			dimension = 1536
		}
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		dimension: dimension,
		batchSize: batchSize,
	}, nil
}

// Embed generates embeddings for the given texts, batching requests.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var all [][]float32
	for i := 0; i < len(texts); i += e.batchSize {
		end := i + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		embeddings, err := e.embedBatch(ctx, texts[i:end])
		if err != nil {
			return nil, err
		}
		all = append(all, embeddings...)
	}

	return all, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < len(embeddings) {
			embeddings[data.Index] = data.Embedding
		}
	}

	return embeddings, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

// MockEmbedder produces deterministic embeddings without network calls.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = make([]float32, e.dimension)
		for j, r := range texts[i] {
			if j < e.dimension {
				embeddings[i][j] = float32(r) / 1000.0
			}
		}
	}
	return embeddings, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
