// Package sentiment drives the external entailment classifier over
// per-mention context windows and reconciles the window-level scores into
// one verdict per player.
package sentiment

import (
	"context"
	"fmt"

	"sentimizer/internal/config"
	"sentimizer/internal/metrics"
)

// Pair is one premise/hypothesis input to the entailment classifier.
type Pair struct {
	Premise    string `json:"premise"`
	Hypothesis string `json:"hypothesis"`
}

// Scores is the classifier's probability distribution for one pair. The
// consensus engine consumes only the entailment component.
type Scores struct {
	Contradiction float64 `json:"contradiction"`
	Entailment    float64 `json:"entailment"`
	Neutral       float64 `json:"neutral"`
}

// Classifier scores batches of premise/hypothesis pairs. One batch per
// player is a throughput requirement, not an optimization: every call
// crosses a process boundary to a model. Implementations must be safe
// for concurrent use across players.
type Classifier interface {
	// ScoreBatch returns one Scores per input pair, in input order.
	ScoreBatch(ctx context.Context, pairs []Pair) ([]Scores, error)

	// Name identifies the backing model for logging.
	Name() string
}

// NewClassifier creates a Classifier from configuration.
func NewClassifier(cfg config.Config, collector *metrics.Collector) (Classifier, error) {
	switch cfg.Classifier {
	case config.ProviderNLI, "":
		return NewNLIClient(cfg.NLIEndpoint), nil
	case config.ProviderOllama, config.ProviderOpenAI, config.ProviderAnthropic, config.ProviderBedrock:
		return NewLLMClassifier(cfg, collector)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Classifier)
	}
}
