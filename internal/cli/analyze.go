package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"sentimizer/internal/models"
	"sentimizer/internal/sentiment"
)

var analyzeText string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [transcript-file]",
	Short: "Analyze a transcript and print per-player sentiment verdicts",
	Long: `Analyze runs the full pipeline over a transcript: sentence tagging,
mention normalization, roster matching, and sentiment consensus.

Examples:
  sentimizer analyze episode42.txt
  sentimizer analyze --text "George Kittle had a monster game."
  sentimizer analyze episode42.txt --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "analyze this text instead of a file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	transcript, err := readTranscript(args)
	if err != nil {
		return err
	}

	analyzer, err := getAnalyzer()
	if err != nil {
		return err
	}

	verdicts, err := analyzer.Analyze(context.Background(), transcript)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	return printVerdicts(verdicts)
}

// readTranscript resolves the transcript from --text or the file argument.
func readTranscript(args []string) (string, error) {
	if analyzeText != "" {
		return analyzeText, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("provide a transcript file or --text")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}

func printVerdicts(verdicts map[string]models.ConsensusVerdict) error {
	if jsonOutput {
		return printJSON(verdicts)
	}

	if len(verdicts) == 0 {
		fmt.Println("No roster players mentioned.")
		return nil
	}

	names := make([]string, 0, len(verdicts))
	for name := range verdicts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		verdict := verdicts[name]
		rows = append(rows, []string{
			name,
			verdict.FinalLabel,
			fmt.Sprintf("%.3f", verdict.Consensus[sentiment.LabelPositive]),
			fmt.Sprintf("%.3f", verdict.Consensus[sentiment.LabelNegative]),
			fmt.Sprintf("%.3f", verdict.Consensus[sentiment.LabelNeutral]),
			fmt.Sprintf("%d", len(verdict.Windows)),
			string(verdict.Status),
		})
	}

	fmt.Println(renderTable(
		[]string{"Player", "Sentiment", "Positive", "Negative", "Neutral", "Windows", "Match"},
		rows, 3, 4, 5, 6,
	))
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
