package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/bedrock"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"sentimizer/internal/apperr"
	"sentimizer/internal/config"
	"sentimizer/internal/metrics"
)

const llmSystemPrompt = `You are a natural language inference judge. For each numbered premise/hypothesis pair, estimate the probability that the hypothesis is contradicted by, entailed by, or neutral with respect to the premise.

Respond with ONLY a JSON array, one object per pair, in input order:
[{"contradiction": 0.0, "entailment": 0.0, "neutral": 0.0}, ...]

Each object's three values must be probabilities in [0, 1].`

// LLMClassifier scores pairs by prompting a chat model for entailment
// probabilities. It exists so the pipeline can run without a dedicated
// cross-encoder server; scores are the model's estimates, not calibrated
// NLI output.
type LLMClassifier struct {
	llm       llms.Model
	modelName string
	collector *metrics.Collector
}

// Compile-time check that LLMClassifier implements Classifier.
var _ Classifier = (*LLMClassifier)(nil)

// NewLLMClassifier creates an LLM-backed classifier based on configuration.
func NewLLMClassifier(cfg config.Config, collector *metrics.Collector) (*LLMClassifier, error) {
	var model llms.Model
	var err error

	switch cfg.Classifier {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case config.ProviderBedrock:
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := bedrockruntime.NewFromConfig(awsCfg)
		model, err = bedrock.New(
			bedrock.WithClient(client),
			bedrock.WithModel(cfg.BedrockModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Classifier)
	}

	name := cfg.LLMModel
	if cfg.Classifier == config.ProviderBedrock {
		name = cfg.BedrockModel
	}

	return &LLMClassifier{
		llm:       model,
		modelName: name,
		collector: collector,
	}, nil
}

// Name identifies the backing model.
func (c *LLMClassifier) Name() string {
	return "llm:" + c.modelName
}

// ScoreBatch prompts the model once with every pair and parses the JSON
// array it returns.
func (c *LLMClassifier) ScoreBatch(ctx context.Context, pairs []Pair) ([]Scores, error) {
	if len(pairs) == 0 {
		return []Scores{}, nil
	}

	var prompt strings.Builder
	for i, pair := range pairs {
		fmt.Fprintf(&prompt, "Pair %d:\nPremise: %s\nHypothesis: %s\n\n", i+1, pair.Premise, pair.Hypothesis)
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, llmSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt.String()),
	}

	start := time.Now()
	response, err := c.llm.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return nil, apperr.Upstream(err, "llm classifier")
	}
	if len(response.Choices) == 0 {
		return nil, apperr.Upstream(fmt.Errorf("no response choices"), "llm classifier")
	}

	choice := response.Choices[0]
	if c.collector != nil {
		c.collector.RecordLLMUsage(metrics.OpClassifier, time.Since(start),
			tokenCount(choice, "PromptTokens"), tokenCount(choice, "CompletionTokens"))
	}

	scores, err := parseScores(choice.Content, len(pairs))
	if err != nil {
		return nil, apperr.Upstream(err, "parse llm scores")
	}
	return scores, nil
}

// tokenCount reads a token counter from the provider's generation info,
// which not every backend populates.
func tokenCount(choice *llms.ContentChoice, key string) int64 {
	if choice.GenerationInfo == nil {
		return 0
	}
	if n, ok := choice.GenerationInfo[key].(int); ok {
		return int64(n)
	}
	return 0
}

// parseScores extracts the JSON array from the model output, tolerating
// surrounding prose and code fences, and clamps values into [0, 1].
func parseScores(content string, want int) ([]Scores, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var scores []Scores
	if err := json.Unmarshal([]byte(content[start:end+1]), &scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	if len(scores) != want {
		return nil, fmt.Errorf("score count mismatch: got %d, want %d", len(scores), want)
	}

	for i := range scores {
		scores[i].Contradiction = clamp01(scores[i].Contradiction)
		scores[i].Entailment = clamp01(scores[i].Entailment)
		scores[i].Neutral = clamp01(scores[i].Neutral)
	}
	return scores, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
