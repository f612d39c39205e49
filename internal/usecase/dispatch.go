package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"queryrouter/internal/domain"
	"queryrouter/internal/port"
)

// UnrecognizedTargetError is returned when the analyzer selects a target key
// that has no registered retriever. Dispatch fails closed: no fallback
// retriever is consulted.
type UnrecognizedTargetError struct {
	Target string
	Known  []string
}

func (e *UnrecognizedTargetError) Error() string {
	return fmt.Sprintf("no retriever registered for target %q (known targets: %s)",
		e.Target, strings.Join(e.Known, ", "))
}

// Dispatcher routes a free-text query to one retrieval backend: it asks the
// analyzer for a structured query, looks the target key up in its registry,
// and forwards the rewritten query to the matching retriever. The registry is
// copied at construction and read-only afterwards, so concurrent dispatches
// need no locking.
type Dispatcher struct {
	analyzer port.Analyzer
	registry map[string]port.Retriever
	keys     []string
	log      zerolog.Logger
}

// NewDispatcher validates its collaborators eagerly: a nil analyzer, an empty
// registry, or a nil retriever value is a construction error, not a dispatch
// error.
func NewDispatcher(analyzer port.Analyzer, registry map[string]port.Retriever, log zerolog.Logger) (*Dispatcher, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("dispatcher requires an analyzer")
	}
	if len(registry) == 0 {
		return nil, fmt.Errorf("dispatcher requires a non-empty registry")
	}

	copied := make(map[string]port.Retriever, len(registry))
	keys := make([]string, 0, len(registry))
	for key, r := range registry {
		if key == "" {
			return nil, fmt.Errorf("registry contains an empty target key")
		}
		if r == nil {
			return nil, fmt.Errorf("registry target %q has a nil retriever", key)
		}
		copied[key] = r
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Dispatcher{
		analyzer: analyzer,
		registry: copied,
		keys:     keys,
		log:      log,
	}, nil
}

// Dispatch analyzes the query, selects the retriever for the analyzed target,
// and returns that retriever's documents unchanged. Analyzer and retriever
// errors are surfaced as-is; there are no retries and no partial results.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) ([]domain.Document, error) {
	analyzed, err := d.analyzer.Analyze(ctx, query)
	if err != nil {
		return nil, err
	}

	retriever, ok := d.registry[analyzed.Target]
	if !ok {
		d.log.Warn().
			Str("target", analyzed.Target).
			Strs("known", d.keys).
			Msg("analyzer returned unrecognized target")
		return nil, &UnrecognizedTargetError{Target: analyzed.Target, Known: d.keys}
	}

	d.log.Debug().
		Str("target", analyzed.Target).
		Str("rewritten", analyzed.RewrittenQuery).
		Msg("dispatching query")

	return retriever.Retrieve(ctx, analyzed.RewrittenQuery)
}

// Targets returns the sorted target keys the dispatcher can route to.
func (d *Dispatcher) Targets() []string {
	return d.keys
}
