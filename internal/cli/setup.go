package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sentimizer/internal/aggregate"
)

var setupCmd = &cobra.Command{
	Use:   "setup [transcript-file]",
	Short: "Run identification and matching only, without sentiment scoring",
	Long: `Setup stops the pipeline after mention aggregation. Useful for checking
which names were detected and how they resolved against the roster before
spending classifier calls.

Examples:
  sentimizer setup episode42.txt
  sentimizer setup --text "Kelsey and the Joker both balled out." --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "analyze this text instead of a file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	transcript, err := readTranscript(args)
	if err != nil {
		return err
	}

	analyzer, err := getAnalyzer()
	if err != nil {
		return err
	}

	result, err := analyzer.Setup(context.Background(), transcript)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	if jsonOutput {
		return printJSON(result)
	}

	if len(result.Players) == 0 {
		fmt.Printf("No roster players mentioned in %d sentences.\n", len(result.Sentences))
		return nil
	}

	names := aggregate.SortedNames(result.Players)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		group := result.Players[name]
		first := group.Occurrences[0]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", len(group.Occurrences)),
			fmt.Sprintf("%v", group.SentenceIndices.Values()),
			fmt.Sprintf("%d", first.Score),
			string(first.Status),
		})
	}

	fmt.Println(renderTable(
		[]string{"Player", "Mentions", "Sentences", "Score", "Match"},
		rows, 2, 4,
	))
	return nil
}
