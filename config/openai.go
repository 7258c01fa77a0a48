package config

import (
	"os"

	"github.com/promptdhq/promptd/llm"
	llmopenai "github.com/promptdhq/promptd/llm/openai"
	"github.com/rs/zerolog"
)

// LoadOpenAIConfig resolves the OpenAI section into a client configuration.
func LoadOpenAIConfig(cfg *Config) llm.Config {
	return llm.Config{
		Provider:    cfg.Provider,
		Model:       cfg.OpenAI.Model,
		APIKey:      cfg.OpenAI.APIKey,
		Endpoint:    cfg.OpenAI.Endpoint,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	}
}

// NewOpenAIClient creates a new OpenAI LLM client from the configuration.
func NewOpenAIClient(cfg *Config, logger zerolog.Logger) (*llmopenai.OpenAIClient, error) {
	return llmopenai.NewOpenAIClient(LoadOpenAIConfig(cfg), logger)
}

// applyOpenAIEnvOverrides applies environment variable overrides to the
// OpenAI section.
func applyOpenAIEnvOverrides(cfg *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAI.APIKey = apiKey
	}
	if endpoint := os.Getenv("OPENAI_BASE_URL"); endpoint != "" {
		cfg.OpenAI.Endpoint = endpoint
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
}

// applyEnvOverrides applies all environment variable overrides.
// Environment values take precedence over both file and default values.
func applyEnvOverrides(cfg *Config) {
	applyAnthropicEnvOverrides(cfg)
	applyOpenAIEnvOverrides(cfg)

	if provider := os.Getenv("PROMPTD_PROVIDER"); provider != "" {
		cfg.Provider = provider
	}
}
