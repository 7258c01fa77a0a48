package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/promptdhq/promptd/llm"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// AnthropicConfig represents configuration for the Anthropic LLM provider.
type AnthropicConfig struct {
	APIKey      string   `yaml:"api_key,omitempty"`     // Anthropic API key
	Model       string   `yaml:"model,omitempty"`       // Default model name
	Endpoint    string   `yaml:"endpoint,omitempty"`    // Custom endpoint (default: official API)
	MaxTokens   int64    `yaml:"max_tokens,omitempty"`  // Default completion budget
	Temperature *float64 `yaml:"temperature,omitempty"` // Default sampling temperature
}

// OpenAIConfig represents configuration for the OpenAI LLM provider.
type OpenAIConfig struct {
	APIKey      string   `yaml:"api_key,omitempty"`     // OpenAI API key
	Model       string   `yaml:"model,omitempty"`       // Default model name
	Endpoint    string   `yaml:"endpoint,omitempty"`    // Custom endpoint (default: official API)
	MaxTokens   int64    `yaml:"max_tokens,omitempty"`  // Default completion budget
	Temperature *float64 `yaml:"temperature,omitempty"` // Default sampling temperature
}

// Config represents the application configuration.
type Config struct {
	// Provider selects which LLM provider to use ("anthropic", "claude", or "openai").
	Provider string `yaml:"provider,omitempty"`

	// LLM provider configurations
	Anthropic AnthropicConfig `yaml:"anthropic,omitempty"`
	OpenAI    OpenAIConfig    `yaml:"openai,omitempty"`

	// Logging
	LogFile string `yaml:"log_file,omitempty"` // Path to log file; empty logs to stdout
}

// defaults returns the built-in configuration that loaded files are merged
// over.
func defaults() Config {
	return Config{
		Provider: llm.ProviderAnthropic,
		Anthropic: AnthropicConfig{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4096,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// Load loads configuration from the given path, merging the file over the
// built-in defaults and applying environment variable overrides last.
// A missing file is not an error: defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Config{}

	expandedPath := expandPath(path)
	data, err := os.ReadFile(expandedPath) //nolint:gosec // G304: user-specified config path is intentional
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", expandedPath, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", expandedPath, err)
	}

	// Fill zero-valued fields from defaults; file values take precedence.
	if err := mergo.Merge(&cfg, defaults()); err != nil {
		return nil, fmt.Errorf("failed to merge config defaults: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// Save saves the configuration to the specified path.
func Save(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	// Ensure directory exists
	dir := filepath.Dir(expandedPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(expandedPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LLMConfig resolves the selected provider's section into a client
// configuration. An unrecognized provider value is passed through so the
// service factory can reject it with the offending value embedded.
func (c *Config) LLMConfig() llm.Config {
	switch {
	case lo.Contains(llm.AnthropicAliases(), c.Provider):
		return LoadAnthropicConfig(c)
	case c.Provider == llm.ProviderOpenAI:
		return LoadOpenAIConfig(c)
	default:
		return llm.Config{Provider: c.Provider}
	}
}

// GetConfigPath returns the default config file path, expanding ~ to the
// home directory. Can be overridden via PROMPTD_CONFIG_PATH.
func GetConfigPath() string {
	if envPath := os.Getenv("PROMPTD_CONFIG_PATH"); envPath != "" {
		return expandPath(envPath)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./.promptd/config.yaml"
	}
	return filepath.Join(homeDir, ".promptd", "config.yaml")
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
