package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"queryrouter/internal/adapter/analyzer"
)

var expandQuery string

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Print the multi-query expansions of a question",
	Long: `Generate alternative phrasings of a question, as used by multi-query
retrieval.

Example:
  queryrouter expand -q "how does authentication work"`,
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().StringVarP(&expandQuery, "query", "q", "", "question to expand (required)")
	expandCmd.MarkFlagRequired("query")
}

func runExpand(cmd *cobra.Command, args []string) error {
	comps, err := buildComponents()
	if err != nil {
		return err
	}
	defer comps.Close()

	c := GetConfig()
	expander := analyzer.NewExpander(comps.llm, c.Retrieve.Expansions)

	expansion, err := expander.Expand(cmd.Context(), expandQuery)
	if err != nil {
		return err
	}

	for i, q := range expansion.Queries {
		fmt.Printf("%d. %s\n", i+1, q)
	}
	return nil
}
