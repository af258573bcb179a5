package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Analyze the bundled example transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, err := getAnalyzer()
		if err != nil {
			return err
		}

		verdicts, err := analyzer.AnalyzeExample(context.Background())
		if err != nil {
			return fmt.Errorf("analyze example: %w", err)
		}
		return printVerdicts(verdicts)
	},
}
