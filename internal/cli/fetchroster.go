package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sentimizer/internal/metrics"
	"sentimizer/internal/roster"
)

var fetchRosterOut string

var fetchRosterCmd = &cobra.Command{
	Use:   "fetch-roster",
	Short: "Download the current NFL roster from the sports-data provider",
	Long: `Fetch-roster downloads the athlete list and writes it as the roster JSON
the analyze commands load at startup.`,
	Args: cobra.NoArgs,
	RunE: runFetchRoster,
}

func init() {
	fetchRosterCmd.Flags().StringVarP(&fetchRosterOut, "out", "o", "", "output path (defaults to the configured roster path)")
}

func runFetchRoster(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	entries, err := roster.NewFetcher().Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch roster: %w", err)
	}
	collector.RecordTiming(metrics.OpRosterFetch, time.Since(start))

	path := fetchRosterOut
	if path == "" {
		path = cfg.RosterPath
	}
	if err := roster.Save(path, entries); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}

	fmt.Printf("Saved %d players to %s\n", len(entries), path)
	return nil
}
