package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"queryrouter/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "queryrouter",
	Short: "Query analysis and retriever dispatch for document collections",
	Long: `queryrouter analyzes free-text questions with an LLM and routes them
to the right retrieval backend: it rewrites the query, picks a target
collection from the configured routes, and runs a vector similarity search.

Example usage:
  queryrouter index ./corpus -c docs     # Ingest a corpus into a collection
  queryrouter route -q "where did Harrison work"
  queryrouter ask -q "where did Harrison work"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(parseLogLevel(cfg.Logging.Level)).
			With().
			Timestamp().
			Logger()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./queryrouter.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "trace":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
