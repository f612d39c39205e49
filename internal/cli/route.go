package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	routeQuery string
	routeJSON  bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Dispatch a query to the matching retrieval backend",
	Long: `Analyze a question with the LLM, route it to the configured backend,
and print the retrieved documents.

Examples:
  queryrouter route -q "where did Harrison work"
  queryrouter route -q "where did Ankush work" --json`,
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringVarP(&routeQuery, "query", "q", "", "question to route (required)")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "output as JSON")
	routeCmd.MarkFlagRequired("query")
}

// documentResult is the CLI output shape for one retrieved document.
type documentResult struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func runRoute(cmd *cobra.Command, args []string) error {
	comps, err := buildComponents()
	if err != nil {
		return err
	}
	defer comps.Close()

	docs, err := comps.dispatcher.Dispatch(cmd.Context(), routeQuery)
	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	results := make([]documentResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, documentResult{
			ID:       doc.ID,
			Score:    doc.Score,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		})
	}

	if routeJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(results), routeQuery)
	for i, r := range results {
		fmt.Printf("--- [%d] %s (score: %.3f) ---\n", i+1, r.ID, r.Score)
		text := r.Content
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
