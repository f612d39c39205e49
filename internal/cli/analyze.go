package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"queryrouter/internal/adapter/analyzer"
)

var (
	analyzeQuery     string
	analyzeStepBack  bool
	analyzeStructure bool
	analyzeDecompose bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show how a query would be analyzed, without retrieving",
	Long: `Run the query analyzers and print their output: the routing decision
(rewritten query + target), and optionally the step-back form, the structured
filter, and the decomposition.

Examples:
  queryrouter analyze -q "where did Harrison work"
  queryrouter analyze -q "papers by Chen since 2023" --structure
  queryrouter analyze -q "compare X and Y" --decompose --stepback`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeQuery, "query", "q", "", "question to analyze (required)")
	analyzeCmd.Flags().BoolVar(&analyzeStepBack, "stepback", false, "also print the step-back question")
	analyzeCmd.Flags().BoolVar(&analyzeStructure, "structure", false, "also print the structured filter")
	analyzeCmd.Flags().BoolVar(&analyzeDecompose, "decompose", false, "also print the sub-questions")
	analyzeCmd.MarkFlagRequired("query")
}

// analysisResult collects the requested analyzer outputs for display.
type analysisResult struct {
	RewrittenQuery string   `json:"rewritten_query"`
	Target         string   `json:"target"`
	StepBack       string   `json:"step_back,omitempty"`
	Structured     any      `json:"structured,omitempty"`
	SubQuestions   []string `json:"sub_questions,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	comps, err := buildComponents()
	if err != nil {
		return err
	}
	defer comps.Close()

	ctx := cmd.Context()

	analyzed, err := comps.router.Analyze(ctx, analyzeQuery)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	result := analysisResult{
		RewrittenQuery: analyzed.RewrittenQuery,
		Target:         analyzed.Target,
	}

	if analyzeStepBack {
		rewritten, err := analyzer.NewStepBack(comps.llm).Rewrite(ctx, analyzeQuery)
		if err != nil {
			return err
		}
		result.StepBack = rewritten
	}

	if analyzeStructure {
		structured, err := analyzer.NewStructurer(comps.llm).Structure(ctx, analyzeQuery)
		if err != nil {
			return err
		}
		result.Structured = structured
	}

	if analyzeDecompose {
		dec, err := analyzer.NewDecomposer(comps.llm).Decompose(ctx, analyzeQuery)
		if err != nil {
			return err
		}
		result.SubQuestions = dec.SubQuestions
	}

	output, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(output))
	return nil
}
