package llm

import (
	"testing"
)

func TestNewTextMessage(t *testing.T) {
	msg := NewTextMessage(RoleUser, "hello")
	if msg.Role != RoleUser {
		t.Errorf("Expected role %q, got %q", RoleUser, msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("Expected content 'hello', got %q", msg.Content)
	}
}

func TestRequest_EffectiveMaxTokens(t *testing.T) {
	cfg := Config{MaxTokens: 1024}

	req := &Request{MaxTokens: 256}
	if got := req.EffectiveMaxTokens(cfg, 4096); got != 256 {
		t.Errorf("Expected request override 256, got %d", got)
	}

	req = &Request{}
	if got := req.EffectiveMaxTokens(cfg, 4096); got != 1024 {
		t.Errorf("Expected config default 1024, got %d", got)
	}

	if got := req.EffectiveMaxTokens(Config{}, 4096); got != 4096 {
		t.Errorf("Expected fallback 4096, got %d", got)
	}
}

func TestRequest_EffectiveTemperature(t *testing.T) {
	cfgTemp := 0.7
	reqTemp := 0.2
	cfg := Config{Temperature: &cfgTemp}

	req := &Request{Temperature: &reqTemp}
	if got := req.EffectiveTemperature(cfg); got == nil || *got != reqTemp {
		t.Errorf("Expected request override %v, got %v", reqTemp, got)
	}

	req = &Request{}
	if got := req.EffectiveTemperature(cfg); got == nil || *got != cfgTemp {
		t.Errorf("Expected config default %v, got %v", cfgTemp, got)
	}

	if got := req.EffectiveTemperature(Config{}); got != nil {
		t.Errorf("Expected nil temperature, got %v", got)
	}
}

func TestAnthropicAliases(t *testing.T) {
	aliases := AnthropicAliases()
	if len(aliases) != 2 {
		t.Fatalf("Expected 2 aliases, got %d", len(aliases))
	}
	if aliases[0] != ProviderAnthropic || aliases[1] != ProviderClaude {
		t.Errorf("Unexpected aliases: %v", aliases)
	}
}
