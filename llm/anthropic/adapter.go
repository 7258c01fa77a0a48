package anthropic

import (
	"github.com/promptdhq/promptd/llm"
	"github.com/samber/lo"
)

// defaultMaxTokens is used when neither the request nor the configuration
// specifies a completion budget. The Messages API requires max_tokens.
const defaultMaxTokens = 4096

// messagesRequest is the wire format for the Anthropic Messages API.
type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int64         `json:"max_tokens"`
	Temperature *float64      `json:"temperature,omitempty"`
	System      string        `json:"system,omitempty"`
	Messages    []wireMessage `json:"messages"`
	Stream      bool          `json:"stream,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the wire format of a buffered Messages API response.
type messagesResponse struct {
	ID         string         `json:"id"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Content    []contentBlock `json:"content"`
	Usage      wireUsage      `json:"usage"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type wireUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// toMessagesRequest translates a provider-neutral request into the Anthropic
// wire format. The system prompt, when present, goes into the top-level
// system field rather than the message list.
func toMessagesRequest(cfg llm.Config, req *llm.Request, stream bool) messagesRequest {
	return messagesRequest{
		Model:       cfg.Model,
		MaxTokens:   req.EffectiveMaxTokens(cfg, defaultMaxTokens),
		Temperature: req.EffectiveTemperature(cfg),
		System:      req.System,
		Messages: lo.Map(req.Messages, func(m llm.Message, _ int) wireMessage {
			return wireMessage{Role: string(m.Role), Content: m.Content}
		}),
		Stream: stream,
	}
}

// fromMessagesResponse translates an Anthropic response into the
// provider-neutral format. Text is the concatenation of all text-typed
// content blocks; the API does not report a total token count, so the total
// is the sum of input and output tokens.
func fromMessagesResponse(resp messagesResponse) *llm.Response {
	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &llm.Response{
		Text: text,
		Usage: &llm.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
		Metadata: llm.Metadata{
			Model:      resp.Model,
			StopReason: resp.StopReason,
			ID:         resp.ID,
		},
	}
}
