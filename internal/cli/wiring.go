package cli

import (
	"fmt"
	"os"

	"queryrouter/config"
	"queryrouter/internal/adapter/analyzer"
	"queryrouter/internal/adapter/embedding"
	"queryrouter/internal/adapter/llm"
	"queryrouter/internal/adapter/store"
	"queryrouter/internal/usecase"
)

// components holds everything a query-serving command needs.
type components struct {
	llm        *llm.Client
	embedder   *embedding.OpenAIEmbedder
	store      *store.BoltVectorStore
	router     *analyzer.Router
	dispatcher *usecase.Dispatcher
}

// buildComponents wires the LLM client, embedder, vector store, registry, and
// dispatcher from config. The caller must Close the returned components.
func buildComponents() (*components, error) {
	c := GetConfig()

	dbPath := config.StoreDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no vector store found at %s. Run 'queryrouter index' first", dbPath)
	}

	chat, err := llm.New(c.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	embedder, err := embedding.NewOpenAIEmbedder(c.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	vectorStore, err := store.NewBoltVectorStore(dbPath, embedder.Dimension())
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store: %w", err)
	}

	registry, targets, err := usecase.BuildRegistry(c, chat, embedder, vectorStore)
	if err != nil {
		vectorStore.Close()
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	router, err := analyzer.NewRouter(chat, targets)
	if err != nil {
		vectorStore.Close()
		return nil, err
	}

	dispatcher, err := usecase.NewDispatcher(router, registry, log)
	if err != nil {
		vectorStore.Close()
		return nil, err
	}

	return &components{
		llm:        chat,
		embedder:   embedder,
		store:      vectorStore,
		router:     router,
		dispatcher: dispatcher,
	}, nil
}

func (c *components) Close() error {
	return c.store.Close()
}
