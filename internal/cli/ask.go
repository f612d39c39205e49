package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"queryrouter/internal/adapter/analyzer"
	"queryrouter/internal/port"
	"queryrouter/internal/usecase"
)

var (
	askQuery string
	askMulti bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Route a question, retrieve context, and answer it",
	Long: `Dispatch the question to its retrieval backend and generate an answer
grounded in the retrieved documents. With --multi, the question is first
expanded into alternative phrasings and the dispatched results are fused.

Examples:
  queryrouter ask -q "where did Harrison work"
  queryrouter ask -q "how does the billing pipeline retry" --multi`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuery, "query", "q", "", "question to answer (required)")
	askCmd.Flags().BoolVar(&askMulti, "multi", false, "fan out over query expansions")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	comps, err := buildComponents()
	if err != nil {
		return err
	}
	defer comps.Close()

	c := GetConfig()
	ctx := cmd.Context()

	retrieve := port.Retriever(port.RetrieverFunc(comps.dispatcher.Dispatch))
	if askMulti {
		expander := analyzer.NewExpander(comps.llm, c.Retrieve.Expansions)
		mq, err := usecase.NewMultiQuery(expander, retrieve, c.Retrieve.RRFK, c.Retrieve.TopK)
		if err != nil {
			return err
		}
		retrieve = mq
	}

	docs, err := retrieve.Retrieve(ctx, askQuery)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	answer, err := usecase.NewAnswerer(comps.llm).Answer(ctx, askQuery, docs)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}

	fmt.Println(answer)
	if len(docs) > 0 {
		fmt.Printf("\n(%d documents consulted)\n", len(docs))
	}
	return nil
}
