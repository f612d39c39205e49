package usecase

import (
	"context"
	"testing"

	"queryrouter/config"
	"queryrouter/internal/adapter/cache"
	"queryrouter/internal/adapter/embedding"
	"queryrouter/internal/adapter/retriever"
	"queryrouter/internal/adapter/store"
	"queryrouter/internal/port"
)

func registryConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Routes = []config.RouteConfig{
		{Key: "harrison", Collection: "harrison", Description: "facts about Harrison"},
		{Key: "ANKUSH", Collection: "ankush", Description: "facts about Ankush", HyDE: true},
	}
	return cfg
}

func TestBuildRegistry(t *testing.T) {
	cfg := registryConfig()
	embedder := embedding.NewMockEmbedder(8)
	st := store.NewMemoryVectorStore(8)

	registry, targets, err := BuildRegistry(cfg, nil, embedder, st)
	if err != nil {
		t.Fatal(err)
	}

	if len(registry) != 2 {
		t.Fatalf("expected 2 registry entries, got %d", len(registry))
	}
	if _, ok := registry["HARRISON"]; !ok {
		t.Error("expected key normalized to HARRISON")
	}
	if _, ok := registry["ANKUSH"]; !ok {
		t.Error("expected ANKUSH entry")
	}

	if _, ok := registry["HARRISON"].(*retriever.SemanticRetriever); !ok {
		t.Errorf("expected plain route to be a semantic retriever, got %T", registry["HARRISON"])
	}
	if _, ok := registry["ANKUSH"].(*retriever.HyDERetriever); !ok {
		t.Errorf("expected hyde route to be a HyDE retriever, got %T", registry["ANKUSH"])
	}

	if len(targets) != 2 || targets[0].Key != "HARRISON" || targets[0].Description != "facts about Harrison" {
		t.Errorf("unexpected targets: %+v", targets)
	}
}

func TestBuildRegistry_CacheWrapping(t *testing.T) {
	cfg := registryConfig()
	cfg.Cache.Enabled = true

	registry, _, err := BuildRegistry(cfg, nil, embedding.NewMockEmbedder(8), store.NewMemoryVectorStore(8))
	if err != nil {
		t.Fatal(err)
	}

	for key, r := range registry {
		if _, ok := r.(*cache.CachedRetriever); !ok {
			t.Errorf("expected %s wrapped in cache, got %T", key, r)
		}
	}
}

func TestBuildRegistry_NoRoutes(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, _, err := BuildRegistry(cfg, nil, embedding.NewMockEmbedder(8), store.NewMemoryVectorStore(8)); err == nil {
		t.Error("expected error for empty route list")
	}
}

func TestBuildRegistry_DuplicateAfterNormalization(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Routes = []config.RouteConfig{
		{Key: "docs", Collection: "a"},
		{Key: "DOCS", Collection: "b"},
	}

	if _, _, err := BuildRegistry(cfg, nil, embedding.NewMockEmbedder(8), store.NewMemoryVectorStore(8)); err == nil {
		t.Error("expected error for keys that collide after normalization")
	}
}

func TestBuildRegistry_RetrieversAreWired(t *testing.T) {
	cfg := registryConfig()
	cfg.Routes = cfg.Routes[:1] // HARRISON only, no HyDE so no LLM needed
	embedder := embedding.NewMockEmbedder(8)
	st := store.NewMemoryVectorStore(8)

	vectors, err := embedder.Embed(context.Background(), []string{"kensho"})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Upsert("harrison", []port.VectorItem{
		{ID: "d1", Vector: vectors[0], Content: "Harrison worked at Kensho"},
	}); err != nil {
		t.Fatal(err)
	}

	registry, _, err := BuildRegistry(cfg, nil, embedder, st)
	if err != nil {
		t.Fatal(err)
	}

	docs, err := registry["HARRISON"].Retrieve(context.Background(), "kensho")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Content != "Harrison worked at Kensho" {
		t.Errorf("expected wired retriever to hit the seeded collection, got %+v", docs)
	}
}
