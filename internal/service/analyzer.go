// Package service orchestrates the full analysis pipeline: tagging,
// normalization, roster matching, aggregation, and sentiment consensus.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sentimizer/internal/aggregate"
	"sentimizer/internal/apperr"
	"sentimizer/internal/match"
	"sentimizer/internal/metrics"
	"sentimizer/internal/models"
	"sentimizer/internal/nlp"
	"sentimizer/internal/normalize"
	"sentimizer/internal/sentiment"
)

// Analyzer runs transcript analyses. All dependencies are process-wide
// and initialized once; every run's intermediate state is request-local,
// so concurrent runs are independent.
type Analyzer struct {
	tagger    nlp.Tagger
	norm      *normalize.Normalizer
	matcher   *match.Matcher
	engine    *sentiment.Engine
	collector *metrics.Collector
	artifacts *ArtifactWriter
	logger    *slog.Logger
}

// NewAnalyzer creates an Analyzer. collector and artifacts may be nil.
func NewAnalyzer(tagger nlp.Tagger, norm *normalize.Normalizer, matcher *match.Matcher, engine *sentiment.Engine, collector *metrics.Collector, artifacts *ArtifactWriter) *Analyzer {
	return &Analyzer{
		tagger:    tagger,
		norm:      norm,
		matcher:   matcher,
		engine:    engine,
		collector: collector,
		artifacts: artifacts,
		logger:    slog.Default(),
	}
}

// SetupResult is the staged-inspection output: matched and grouped
// mentions plus the stripped sentences, without sentiment.
type SetupResult struct {
	Players   map[string]*models.PlayerAggregate `json:"final_player_object"`
	Sentences []string                           `json:"stripped_sentences"`
}

// Analyze runs the full pipeline over one transcript and returns the
// per-player verdicts keyed by canonical name. The run is all-or-nothing:
// a failure at any stage aborts it with no partial results. Zero detected
// mentions is not an error; the result is simply empty.
func (a *Analyzer) Analyze(ctx context.Context, transcript string) (map[string]models.ConsensusVerdict, error) {
	start := time.Now()
	runID := uuid.NewString()

	results, sentences, err := a.identify(ctx, transcript)
	if err != nil {
		return nil, err
	}

	groups := aggregate.Group(results)
	a.artifacts.Write(runID, "identified_mentions.json", results)

	// Aggregation is complete before any window is built: windows depend
	// on the final deduplicated sentence-index sets.
	verdicts, err := a.engine.ConsensusAll(ctx, groups, sentences)
	if err != nil {
		return nil, err
	}
	a.artifacts.Write(runID, "player_sentiments.json", verdicts)

	if a.collector != nil {
		a.collector.RecordTiming(metrics.OpPipeline, time.Since(start))
	}
	a.logger.Info("analysis complete",
		"run_id", runID,
		"sentences", len(sentences),
		"mentions", len(results),
		"players", len(verdicts),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return verdicts, nil
}

// Setup runs the pipeline through aggregation only, for staged inspection
// of the matched and grouped mentions.
func (a *Analyzer) Setup(ctx context.Context, transcript string) (*SetupResult, error) {
	runID := uuid.NewString()

	results, sentences, err := a.identify(ctx, transcript)
	if err != nil {
		return nil, err
	}

	groups := aggregate.Group(results)
	a.artifacts.Write(runID, "identified_mentions.json", results)

	a.logger.Info("setup complete",
		"run_id", runID,
		"mentions", len(results),
		"players", len(groups),
	)

	return &SetupResult{Players: groups, Sentences: sentences}, nil
}

// identify tags the transcript and resolves every person mention against
// the roster. Returns the match results in document order and the
// stripped sentence list.
func (a *Analyzer) identify(ctx context.Context, transcript string) ([]models.MatchResult, []string, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, nil, apperr.Input("no transcript text supplied")
	}

	tagStart := time.Now()
	tagged, err := a.tagger.Tag(ctx, transcript)
	if err != nil {
		return nil, nil, err
	}
	if a.collector != nil {
		a.collector.RecordTiming(metrics.OpTagger, time.Since(tagStart))
	}

	sentences := make([]string, len(tagged))
	results := make([]models.MatchResult, 0)
	dropped := 0
	for i, sentence := range tagged {
		sentences[i] = sentence.Text
		for _, person := range sentence.People {
			mention := models.Mention{
				RawName:       person,
				SentenceIndex: i,
				SentenceText:  sentence.Text,
			}
			normalized, ok := a.norm.Mention(mention)
			if !ok {
				dropped++
				continue
			}
			results = append(results, a.matcher.Match(normalized))
		}
	}

	a.logger.Debug("identified mentions",
		"sentences", len(sentences),
		"mentions", len(results),
		"dropped", dropped,
	)

	return results, sentences, nil
}
