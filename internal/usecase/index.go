package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"queryrouter/internal/adapter/fs"
	"queryrouter/internal/port"
)

// Indexer ingests a corpus directory into a vector store collection: walk,
// chunk, embed, upsert.
type Indexer struct {
	walker    *fs.Walker
	embedder  port.Embedder
	store     port.VectorStore
	maxChunk  int
	batchSize int
	log       zerolog.Logger
}

// IndexStats summarizes one ingest run.
type IndexStats struct {
	Files  int
	Chunks int
}

func NewIndexer(walker *fs.Walker, embedder port.Embedder, store port.VectorStore, maxChunk, batchSize int, log zerolog.Logger) *Indexer {
	if maxChunk <= 0 {
		maxChunk = 2000
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Indexer{
		walker:    walker,
		embedder:  embedder,
		store:     store,
		maxChunk:  maxChunk,
		batchSize: batchSize,
		log:       log,
	}
}

// Ingest indexes every matching file under root into the collection.
// onProgress, if non-nil, is called after each embedded batch with the number
// of chunks done and the total.
func (ix *Indexer) Ingest(ctx context.Context, root, collection string, onProgress func(done, total int)) (IndexStats, error) {
	var stats IndexStats

	files, err := ix.walker.Walk(root)
	if err != nil {
		return stats, fmt.Errorf("failed to walk corpus: %w", err)
	}

	type pending struct {
		item port.VectorItem
		text string
	}
	var all []pending

	for _, file := range files {
		text, err := fs.ReadFile(file.Path)
		if err != nil {
			ix.log.Warn().Str("path", file.Rel).Err(err).Msg("skipping unreadable file")
			continue
		}

		chunks := SplitParagraphs(text, ix.maxChunk)
		if len(chunks) == 0 {
			continue
		}
		stats.Files++

		for i, chunk := range chunks {
			all = append(all, pending{
				item: port.VectorItem{
					ID: uuid.NewString(),
					Metadata: map[string]string{
						"source": file.Rel,
						"chunk":  fmt.Sprintf("%d", i),
					},
				},
				text: chunk,
			})
		}
	}

	for i := 0; i < len(all); i += ix.batchSize {
		end := i + ix.batchSize
		if end > len(all) {
			end = len(all)
		}
		batch := all[i:end]

		texts := make([]string, len(batch))
		for j, p := range batch {
			texts[j] = p.text
		}

		vectors, err := ix.embedder.Embed(ctx, texts)
		if err != nil {
			return stats, fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(vectors) != len(batch) {
			return stats, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}

		items := make([]port.VectorItem, len(batch))
		for j, p := range batch {
			item := p.item
			item.Vector = vectors[j]
			item.Content = p.text
			items[j] = item
		}

		if err := ix.store.Upsert(collection, items); err != nil {
			return stats, fmt.Errorf("upsert failed: %w", err)
		}

		stats.Chunks = end
		if onProgress != nil {
			onProgress(end, len(all))
		}
	}

	ix.log.Info().
		Str("collection", collection).
		Int("files", stats.Files).
		Int("chunks", stats.Chunks).
		Msg("ingest complete")

	return stats, nil
}

// SplitParagraphs splits text on blank lines and greedily packs paragraphs
// into chunks of at most maxChunk characters. A single oversized paragraph
// becomes its own chunk rather than being split mid-sentence.
func SplitParagraphs(text string, maxChunk int) []string {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(p)+2 > maxChunk {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	flush()

	return chunks
}
