// Package cli provides the command-line interface for sentimizer.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sentimizer/internal/config"
	"sentimizer/internal/match"
	"sentimizer/internal/metrics"
	"sentimizer/internal/nlp"
	"sentimizer/internal/normalize"
	"sentimizer/internal/roster"
	"sentimizer/internal/sentiment"
	"sentimizer/internal/service"
	"sentimizer/internal/window"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	jsonOutput bool

	// Global config and metrics, initialized in PersistentPreRunE
	cfg       config.Config
	collector *metrics.Collector

	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sentimizer",
	Short: "Athlete sentiment analysis for fantasy football transcripts",
	Long: `Sentimizer extracts athlete mentions from podcast and show transcripts,
resolves them against the NFL roster with fuzzy matching, and scores each
player's sentiment with an entailment classifier over the surrounding
context.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		collector = metrics.NewCollector()

		logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
		slog.SetDefault(logger)
		logCleanup = cleanup

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// getAnalyzer builds the full pipeline from configuration. Constructed
// lazily so commands that don't analyze (fetch-roster) skip the roster
// and classifier setup.
func getAnalyzer() (*service.Analyzer, error) {
	r, err := roster.Load(cfg.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	norm, err := normalize.Load(cfg.AliasPath)
	if err != nil {
		return nil, fmt.Errorf("load alias tables: %w", err)
	}

	classifier, err := sentiment.NewClassifier(cfg, collector)
	if err != nil {
		return nil, fmt.Errorf("init classifier: %w", err)
	}
	slog.Debug("classifier ready", "model", classifier.Name())

	engine := sentiment.NewEngine(classifier, window.NewBuilder(norm, cfg.WindowRadius), cfg.ScoreConcurrency, collector)
	artifacts := service.NewArtifactWriter(cfg.OutputDir)

	return service.NewAnalyzer(nlp.NewProseTagger(), norm, match.New(r), engine, collector, artifacts), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of tables")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(fetchRosterCmd)
	rootCmd.AddCommand(serveCmd)
}
