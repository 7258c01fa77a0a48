// Package service selects, constructs, and owns LLM provider clients.
//
// The factory maps a configuration's provider field onto a concrete client
// variant; the registry holds at most one constructed client for the running
// process with an explicit initialize/get/reset lifecycle.
//
// Construction lives outside the llm package so the contract package never
// imports its own implementations.
package service

import (
	"github.com/promptdhq/promptd/llm"
	"github.com/promptdhq/promptd/llm/anthropic"
	"github.com/promptdhq/promptd/llm/openai"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// NewClient constructs the provider client selected by cfg.Provider.
// Recognized aliases ("anthropic", "claude") map to the Anthropic client;
// "openai" maps to the OpenAI client. Matching is case-sensitive.
// Construction is pure: no I/O happens until the client is used.
func NewClient(cfg llm.Config, logger zerolog.Logger) (llm.Client, error) {
	switch {
	case lo.Contains(llm.AnthropicAliases(), cfg.Provider):
		return anthropic.NewAnthropicClient(cfg, logger)
	case cfg.Provider == llm.ProviderOpenAI:
		return openai.NewOpenAIClient(cfg, logger)
	default:
		return nil, llm.NewUnsupportedProviderError(cfg.Provider)
	}
}
