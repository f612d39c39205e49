package usecase

import (
	"fmt"
	"strings"
	"time"

	"queryrouter/config"
	"queryrouter/internal/adapter/analyzer"
	"queryrouter/internal/adapter/cache"
	"queryrouter/internal/adapter/retriever"
	"queryrouter/internal/port"
)

// BuildRegistry constructs the retriever registry and analyzer target list
// from configuration. Every route gets a semantic retriever over its
// collection; routes marked hyde search via a hypothetical answer instead.
// Keys are normalized to upper case to match the analyzer's output contract.
func BuildRegistry(
	cfg *config.Config,
	llm port.LLM,
	embedder port.Embedder,
	store port.VectorStore,
) (map[string]port.Retriever, []analyzer.Target, error) {
	if len(cfg.Routes) == 0 {
		return nil, nil, fmt.Errorf("no routes configured")
	}

	var queryCache *cache.QueryCache
	if cfg.Cache.Enabled {
		queryCache = cache.NewQueryCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}

	registry := make(map[string]port.Retriever, len(cfg.Routes))
	targets := make([]analyzer.Target, 0, len(cfg.Routes))

	for _, route := range cfg.Routes {
		key := strings.ToUpper(strings.TrimSpace(route.Key))
		if key == "" {
			return nil, nil, fmt.Errorf("route with collection %q has an empty key", route.Collection)
		}
		if _, exists := registry[key]; exists {
			return nil, nil, fmt.Errorf("duplicate route key %q", key)
		}

		var r port.Retriever
		if route.HyDE {
			r = retriever.NewHyDERetriever(llm, embedder, store, route.Collection, cfg.Retrieve.TopK)
		} else {
			r = retriever.NewSemanticRetriever(embedder, store, route.Collection, cfg.Retrieve.TopK)
		}

		if queryCache != nil {
			r = cache.NewCachedRetriever(key, r, queryCache)
		}

		registry[key] = r
		targets = append(targets, analyzer.Target{
			Key:         key,
			Description: route.Description,
		})
	}

	return registry, targets, nil
}
