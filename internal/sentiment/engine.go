package sentiment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sentimizer/internal/apperr"
	"sentimizer/internal/metrics"
	"sentimizer/internal/models"
	"sentimizer/internal/window"
)

// Engine reconciles window-level entailment scores into per-player
// verdicts. One Engine is shared process-wide; all per-run state stays on
// the stack.
type Engine struct {
	classifier  Classifier
	windows     *window.Builder
	concurrency int
	collector   *metrics.Collector
}

// NewEngine creates an Engine. concurrency bounds how many players are
// scored in parallel within one run; values < 1 mean sequential.
func NewEngine(classifier Classifier, windows *window.Builder, concurrency int, collector *metrics.Collector) *Engine {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		classifier:  classifier,
		windows:     windows,
		concurrency: concurrency,
		collector:   collector,
	}
}

// Consensus scores one player group. Every distinct sentence index gets a
// context window; each window is scored once per label in a single
// batched classifier call. The verdict's per-label averages are the
// unweighted element-wise mean across windows — overlapping windows each
// contribute a full vector, which is the documented contract. The final
// label is the argmax of the averaged vector (first label in canonical
// order wins exact ties).
func (e *Engine) Consensus(ctx context.Context, group *models.PlayerAggregate, sentences []string) (models.ConsensusVerdict, error) {
	if len(group.Occurrences) == 0 {
		return models.ConsensusVerdict{}, apperr.Input("player group %q has no occurrences", group.CanonicalName)
	}

	indices := group.SentenceIndices.Values()
	texts := make([]string, 0, len(indices))
	for _, index := range indices {
		texts = append(texts, e.windows.Build(index, sentences))
	}

	pairs := make([]Pair, 0, len(texts)*len(Labels))
	for _, text := range texts {
		for _, label := range Labels {
			pairs = append(pairs, Pair{
				Premise:    text,
				Hypothesis: Hypothesis(group.CanonicalName, label),
			})
		}
	}

	start := time.Now()
	scores, err := e.classifier.ScoreBatch(ctx, pairs)
	if err != nil {
		return models.ConsensusVerdict{}, err
	}
	if e.collector != nil {
		e.collector.RecordTiming(metrics.OpClassifier, time.Since(start))
	}
	if len(scores) != len(pairs) {
		return models.ConsensusVerdict{}, apperr.Upstream(
			fmt.Errorf("classifier returned %d scores for %d pairs", len(scores), len(pairs)),
			"score batch")
	}

	sums := make([]float64, len(Labels))
	windowScores := make([]models.WindowScore, 0, len(texts))
	for w, text := range texts {
		entailments := make([]float64, len(Labels))
		scoreMap := make(map[string]float64, len(Labels))
		for i, label := range Labels {
			entailment := scores[w*len(Labels)+i].Entailment
			entailments[i] = entailment
			scoreMap[label] = entailment
			sums[i] += entailment
		}
		windowScores = append(windowScores, models.WindowScore{
			Text:      text,
			Scores:    scoreMap,
			BestLabel: Labels[argmax(entailments)],
		})
	}

	consensus := make(map[string]float64, len(Labels))
	means := make([]float64, len(Labels))
	for i, label := range Labels {
		means[i] = sums[i] / float64(len(texts))
		consensus[label] = means[i]
	}

	first := group.Occurrences[0]
	return models.ConsensusVerdict{
		CanonicalName:  group.CanonicalName,
		Consensus:      consensus,
		FinalLabel:     Labels[argmax(means)],
		Windows:        windowScores,
		Status:         first.Status,
		TranscriptName: first.TranscriptName,
	}, nil
}

// ConsensusAll scores every group, bounded-parallel across players. Any
// failure aborts the whole call; no partial verdict set is returned.
func (e *Engine) ConsensusAll(ctx context.Context, groups map[string]*models.PlayerAggregate, sentences []string) (map[string]models.ConsensusVerdict, error) {
	verdicts := make(map[string]models.ConsensusVerdict, len(groups))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for name, group := range groups {
		g.Go(func() error {
			verdict, err := e.Consensus(ctx, group, sentences)
			if err != nil {
				return fmt.Errorf("score %s: %w", name, err)
			}
			mu.Lock()
			verdicts[name] = verdict
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

// argmax returns the index of the largest value; the earliest index wins
// ties so label order decides.
func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
