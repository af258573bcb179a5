// Package config loads process configuration from environment variables
// and sets up logging.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ClassifierProvider selects the entailment classifier backend.
type ClassifierProvider string

const (
	// ProviderNLI uses a dedicated cross-encoder NLI inference server.
	ProviderNLI ClassifierProvider = "nli"

	// ProviderOllama prompts a local Ollama chat model for entailment scores.
	ProviderOllama ClassifierProvider = "ollama"

	// ProviderOpenAI prompts an OpenAI chat model.
	ProviderOpenAI ClassifierProvider = "openai"

	// ProviderAnthropic prompts an Anthropic chat model.
	ProviderAnthropic ClassifierProvider = "anthropic"

	// ProviderBedrock prompts a model hosted on AWS Bedrock.
	ProviderBedrock ClassifierProvider = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// Resources
	RosterPath string
	AliasPath  string // empty means built-in tables
	OutputDir  string // per-run JSON artifacts; empty disables dumps

	// Classifier
	Classifier      ClassifierProvider
	NLIEndpoint     string
	LLMModel        string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	BedrockModel    string

	// Pipeline
	ScoreConcurrency int // players scored in parallel per run
	WindowRadius     int

	// Server
	ServerPort string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		RosterPath: getEnv("SENTIMIZER_ROSTER", "resources/nfl_roster.json"),
		AliasPath:  getEnv("SENTIMIZER_ALIASES", ""),
		OutputDir:  getEnv("SENTIMIZER_OUTPUT_DIR", ""),

		Classifier:      ClassifierProvider(getEnv("SENTIMIZER_CLASSIFIER", "nli")),
		NLIEndpoint:     getEnv("SENTIMIZER_NLI_ENDPOINT", "http://localhost:8090/score"),
		LLMModel:        getEnv("SENTIMIZER_LLM_MODEL", "llama3.1"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		BedrockModel:    getEnv("SENTIMIZER_BEDROCK_MODEL", "anthropic.claude-3-haiku-20240307-v1:0"),

		ScoreConcurrency: getEnvInt("SENTIMIZER_SCORE_CONCURRENCY", 4),
		WindowRadius:     getEnvInt("SENTIMIZER_WINDOW_RADIUS", 2),

		ServerPort: getEnv("SENTIMIZER_PORT", "8484"),

		LogFile:  getEnv("SENTIMIZER_LOG_FILE", "/tmp/sentimizer.log"),
		LogLevel: parseLogLevel(getEnv("SENTIMIZER_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
