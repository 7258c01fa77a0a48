package openai

import (
	"github.com/promptdhq/promptd/llm"
	"github.com/samber/lo"
)

// chatRequest is the wire format for the Chat Completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int64         `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	Messages    []wireMessage `json:"messages"`
	Stream      bool          `json:"stream,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the wire format of a buffered Chat Completions response.
type chatResponse struct {
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Choices []choice  `json:"choices"`
	Usage   wireUsage `json:"usage"`
}

type choice struct {
	Message      wireMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type wireUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// toChatRequest translates a provider-neutral request into the OpenAI wire
// format. OpenAI has no top-level system field: the system prompt, when
// present, is prepended to the message list as a system-role message.
func toChatRequest(cfg llm.Config, req *llm.Request, stream bool) chatRequest {
	messages := lo.Map(req.Messages, func(m llm.Message, _ int) wireMessage {
		return wireMessage{Role: string(m.Role), Content: m.Content}
	})
	if req.System != "" {
		messages = append([]wireMessage{{Role: "system", Content: req.System}}, messages...)
	}

	return chatRequest{
		Model:       cfg.Model,
		MaxTokens:   req.EffectiveMaxTokens(cfg, 0),
		Temperature: req.EffectiveTemperature(cfg),
		Messages:    messages,
		Stream:      stream,
	}
}

// fromChatResponse translates an OpenAI response into the provider-neutral
// format. The usage fields map directly; when the reported total is absent
// it falls back to the sum of prompt and completion tokens.
func fromChatResponse(resp chatResponse) *llm.Response {
	var text, stopReason string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
		stopReason = resp.Choices[0].FinishReason
	}

	total := resp.Usage.TotalTokens
	if total == 0 {
		total = resp.Usage.PromptTokens + resp.Usage.CompletionTokens
	}

	return &llm.Response{
		Text: text,
		Usage: &llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      total,
		},
		Metadata: llm.Metadata{
			Model:      resp.Model,
			StopReason: stopReason,
			ID:         resp.ID,
		},
	}
}
