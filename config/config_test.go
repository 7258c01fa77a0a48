package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptdhq/promptd/llm"
)

// clearEnv neutralizes every override variable so a test sees only the file
// and the defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"PROMPTD_PROVIDER",
	} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Missing file should not be an error, got %v", err)
	}
	if cfg.Provider != llm.ProviderAnthropic {
		t.Errorf("Expected default provider %q, got %q", llm.ProviderAnthropic, cfg.Provider)
	}
	if cfg.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Unexpected default Anthropic model: %q", cfg.Anthropic.Model)
	}
	if cfg.Anthropic.MaxTokens != 4096 {
		t.Errorf("Unexpected default max tokens: %d", cfg.Anthropic.MaxTokens)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("Unexpected default OpenAI model: %q", cfg.OpenAI.Model)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, `
provider: openai
openai:
  api_key: file-key
  model: gpt-4o
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Provider != llm.ProviderOpenAI {
		t.Errorf("Expected provider from file, got %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4o" || cfg.OpenAI.APIKey != "file-key" {
		t.Errorf("Unexpected OpenAI section: %+v", cfg.OpenAI)
	}
	// Untouched sections still come from defaults.
	if cfg.Anthropic.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Expected default Anthropic model to survive merge, got %q", cfg.Anthropic.Model)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("PROMPTD_PROVIDER", llm.ProviderClaude)

	path := writeConfigFile(t, `
provider: anthropic
anthropic:
  api_key: file-key
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Anthropic.APIKey != "env-key" {
		t.Errorf("Expected environment to win, got %q", cfg.Anthropic.APIKey)
	}
	if cfg.Provider != llm.ProviderClaude {
		t.Errorf("Expected provider from environment, got %q", cfg.Provider)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, "provider: [not: valid")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestLLMConfig_SelectsProviderSection(t *testing.T) {
	temp := 0.7
	cfg := &Config{
		Provider: llm.ProviderClaude,
		Anthropic: AnthropicConfig{
			APIKey:      "ant-key",
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   2048,
			Temperature: &temp,
		},
		OpenAI: OpenAIConfig{APIKey: "oai-key", Model: "gpt-4o-mini"},
	}

	llmCfg := cfg.LLMConfig()
	if llmCfg.Provider != llm.ProviderClaude {
		t.Errorf("Expected configured alias preserved, got %q", llmCfg.Provider)
	}
	if llmCfg.APIKey != "ant-key" || llmCfg.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Expected Anthropic section, got %+v", llmCfg)
	}
	if llmCfg.MaxTokens != 2048 || llmCfg.Temperature == nil || *llmCfg.Temperature != 0.7 {
		t.Errorf("Expected tuning fields carried over, got %+v", llmCfg)
	}

	cfg.Provider = llm.ProviderOpenAI
	llmCfg = cfg.LLMConfig()
	if llmCfg.APIKey != "oai-key" || llmCfg.Model != "gpt-4o-mini" {
		t.Errorf("Expected OpenAI section, got %+v", llmCfg)
	}
}

func TestLLMConfig_UnknownProviderPassedThrough(t *testing.T) {
	cfg := &Config{Provider: "mystery"}
	llmCfg := cfg.LLMConfig()
	if llmCfg.Provider != "mystery" {
		t.Errorf("Expected unknown provider passed through for the factory, got %q", llmCfg.Provider)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	original := &Config{
		Provider: llm.ProviderOpenAI,
		OpenAI:   OpenAIConfig{APIKey: "round-trip", Model: "gpt-4o"},
		LogFile:  "promptd.log",
	}

	if err := Save(original, path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("Provider not preserved: %q", loaded.Provider)
	}
	if loaded.OpenAI.APIKey != "round-trip" || loaded.OpenAI.Model != "gpt-4o" {
		t.Errorf("OpenAI section not preserved: %+v", loaded.OpenAI)
	}
	if loaded.LogFile != "promptd.log" {
		t.Errorf("LogFile not preserved: %q", loaded.LogFile)
	}
}

func TestGetConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("PROMPTD_CONFIG_PATH", "/tmp/custom/config.yaml")
	if got := GetConfigPath(); got != "/tmp/custom/config.yaml" {
		t.Errorf("Expected override path, got %q", got)
	}
}
