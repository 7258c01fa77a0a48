package config

import (
	"os"

	"github.com/promptdhq/promptd/llm"
	llmanthropic "github.com/promptdhq/promptd/llm/anthropic"
	"github.com/rs/zerolog"
)

// LoadAnthropicConfig resolves the Anthropic section into a client
// configuration. The configured provider alias is preserved so the factory
// dispatch sees the caller's value.
func LoadAnthropicConfig(cfg *Config) llm.Config {
	return llm.Config{
		Provider:    cfg.Provider,
		Model:       cfg.Anthropic.Model,
		APIKey:      cfg.Anthropic.APIKey,
		Endpoint:    cfg.Anthropic.Endpoint,
		MaxTokens:   cfg.Anthropic.MaxTokens,
		Temperature: cfg.Anthropic.Temperature,
	}
}

// NewAnthropicClient creates a new Anthropic LLM client from the configuration.
func NewAnthropicClient(cfg *Config, logger zerolog.Logger) (*llmanthropic.AnthropicClient, error) {
	return llmanthropic.NewAnthropicClient(LoadAnthropicConfig(cfg), logger)
}

// applyAnthropicEnvOverrides applies environment variable overrides to the
// Anthropic section.
func applyAnthropicEnvOverrides(cfg *Config) {
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		cfg.Anthropic.APIKey = apiKey
	}
	if model := os.Getenv("ANTHROPIC_MODEL"); model != "" {
		cfg.Anthropic.Model = model
	}
}
