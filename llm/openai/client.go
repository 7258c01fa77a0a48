package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/promptdhq/promptd/llm"
	"github.com/promptdhq/promptd/llm/sse"
	"github.com/rs/zerolog"
)

const (
	// defaultEndpoint is the canonical Chat Completions endpoint, used unless
	// the configuration overrides it.
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"

	// providerName appears in error messages and logs.
	providerName = "OpenAI"

	// maxErrorBodySize caps how much of an error response body is captured
	// for diagnostics.
	maxErrorBodySize = 64 * 1024
)

// OpenAIClient implements the llm.Client interface for OpenAI's Chat
// Completions API using its native wire format.
type OpenAIClient struct {
	cfg        llm.Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOpenAIClient creates a new OpenAIClient from the given configuration.
// The configuration is not mutated after construction.
func NewOpenAIClient(cfg llm.Config, logger zerolog.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	return &OpenAIClient{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// Complete implements llm.Client.Complete.
func (c *OpenAIClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	resp, err := c.do(ctx, req, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var wireResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		return nil, fmt.Errorf("failed to decode OpenAI response: %w", err)
	}
	if len(wireResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	result := fromChatResponse(wireResp)
	c.logger.Debug().
		Str("model", result.Metadata.Model).
		Str("stop_reason", result.Metadata.StopReason).
		Int64("prompt_tokens", result.Usage.PromptTokens).
		Int64("completion_tokens", result.Usage.CompletionTokens).
		Msg("OpenAI completion finished")

	return result, nil
}

// Stream implements llm.Client.Stream. Errors from the provider surface
// before the first delta; transport errors mid-stream terminate the sequence
// through Stream.Err.
func (c *OpenAIClient) Stream(ctx context.Context, req *llm.Request) (llm.Stream, error) {
	resp, err := c.do(ctx, req, true)
	if err != nil {
		return nil, err
	}

	if resp.Body == nil {
		return nil, llm.NewStreamUnavailableError(providerName)
	}

	return sse.NewStream(resp.Body, extractStreamText), nil
}

// do builds and issues one Chat Completions exchange. On a non-2xx status
// the body is consumed and closed before the error is returned.
func (c *OpenAIClient) do(ctx context.Context, req *llm.Request, stream bool) (*http.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	body, err := json.Marshal(toChatRequest(c.cfg, req, stream))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OpenAI request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	c.logger.Debug().
		Str("endpoint", c.endpoint()).
		Str("model", c.cfg.Model).
		Bool("stream", stream).
		Int("messages", len(req.Messages)).
		Msg("Sending OpenAI request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, llm.NewNetworkError("request to OpenAI API failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close() //nolint:errcheck
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, llm.NewHTTPError(providerName, resp.StatusCode, string(errBody))
	}

	return resp, nil
}

// endpoint resolves the configured endpoint override, else the default.
func (c *OpenAIClient) endpoint() string {
	if c.cfg.Endpoint != "" {
		return c.cfg.Endpoint
	}
	return defaultEndpoint
}

// Ensure OpenAIClient implements llm.Client
var _ llm.Client = (*OpenAIClient)(nil)
