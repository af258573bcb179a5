package service

import (
	"context"
	_ "embed"

	"sentimizer/internal/models"
)

// A short podcast-style transcript excerpt bundled for demos and smoke
// checks.
//
//go:embed example_transcript.txt
var exampleTranscript string

// AnalyzeExample runs the full pipeline over the bundled transcript.
func (a *Analyzer) AnalyzeExample(ctx context.Context) (map[string]models.ConsensusVerdict, error) {
	return a.Analyze(ctx, exampleTranscript)
}
