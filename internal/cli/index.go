package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"queryrouter/config"
	"queryrouter/internal/adapter/embedding"
	"queryrouter/internal/adapter/fs"
	"queryrouter/internal/adapter/store"
	"queryrouter/internal/usecase"
)

var indexCollection string

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Ingest a corpus directory into a collection",
	Long: `Walk a directory, chunk text files by paragraph, embed the chunks,
and upsert them into a vector store collection. The store lives in
.queryrouter/vectors.db under the root directory.

Examples:
  queryrouter index ./docs -c docs
  queryrouter index /data/harrison -c harrison`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVarP(&indexCollection, "collection", "c", "", "target collection (required)")
	indexCmd.MarkFlagRequired("collection")
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	c := GetConfig()

	if err := config.EnsureDataDir(GetRootDir()); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	embedder, err := embedding.NewOpenAIEmbedder(c.Embedding)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	vectorStore, err := store.NewBoltVectorStore(config.StoreDBPath(GetRootDir()), embedder.Dimension())
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer vectorStore.Close()

	walker := fs.NewWalker(c.Ingest.Includes, c.Ingest.Excludes)
	indexer := usecase.NewIndexer(walker, embedder, vectorStore, c.Ingest.MaxChunk, c.Embedding.BatchSize, log)

	var bar *progressbar.ProgressBar
	stats, err := indexer.Ingest(cmd.Context(), path, indexCollection, func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total), "embedding")
		}
		bar.Set(done)
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("Indexed %d files (%d chunks) into collection %q\n", stats.Files, stats.Chunks, indexCollection)
	return nil
}
