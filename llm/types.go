package llm

// MessageRole represents the role of a message in a conversation.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Provider identifiers recognized by the service factory. "anthropic" and
// "claude" are aliases for the same client variant.
const (
	ProviderAnthropic = "anthropic"
	ProviderClaude    = "claude"
	ProviderOpenAI    = "openai"
)

// AnthropicAliases returns the provider values that select the Anthropic
// client variant. Matching is case-sensitive.
func AnthropicAliases() []string {
	return []string{ProviderAnthropic, ProviderClaude}
}

// Config holds everything needed to construct a provider client.
// It is treated as immutable once a client is built from it; changing
// provider or credentials requires constructing a new client.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	Endpoint    string // Optional override of the provider's default base URL
	MaxTokens   int64  // Default completion budget; requests may override
	Temperature *float64
}

// Message represents a single message in a conversation.
type Message struct {
	Role    MessageRole
	Content string
}

// NewTextMessage creates a new message with the given role and text.
func NewTextMessage(role MessageRole, text string) Message {
	return Message{Role: role, Content: text}
}

// Request represents a complete LLM API request.
// Messages must contain at least one entry; role ordering is caller-defined
// and not validated by clients.
type Request struct {
	System      string // Optional system prompt; placement is provider-specific
	Messages    []Message
	MaxTokens   int64    // Overrides Config.MaxTokens when > 0
	Temperature *float64 // Overrides Config.Temperature when set
}

// EffectiveMaxTokens resolves the completion budget for this request against
// the client configuration, falling back to fallback when neither is set.
func (r *Request) EffectiveMaxTokens(cfg Config, fallback int64) int64 {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	if cfg.MaxTokens > 0 {
		return cfg.MaxTokens
	}
	return fallback
}

// EffectiveTemperature resolves the sampling temperature for this request,
// preferring the per-request override over the configured default.
// Returns nil when neither is set so the provider default is used.
func (r *Request) EffectiveTemperature(cfg Config) *float64 {
	if r.Temperature != nil {
		return r.Temperature
	}
	return cfg.Temperature
}

// Response represents a complete LLM API response.
type Response struct {
	Text     string
	Usage    *Usage
	Metadata Metadata
}

// Usage represents token accounting reported by a provider.
// TotalTokens equals the provider-reported total when available, else the
// sum of prompt and completion tokens.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Metadata carries response envelope fields that are not part of the
// generated text.
type Metadata struct {
	Model      string
	StopReason string
	ID         string
}
