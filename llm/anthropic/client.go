package anthropic

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
	// defaultEndpoint is the canonical Messages API endpoint, used unless the
	// configuration overrides it.
	defaultEndpoint = "https://api.anthropic.com/v1/messages"

	// apiVersion is the required anthropic-version header value.
	apiVersion = "2023-06-01"

	// providerName appears in error messages and logs.
	providerName = "Anthropic"

	// maxErrorBodySize caps how much of an error response body is captured
	// for diagnostics.
	maxErrorBodySize = 64 * 1024
)

// AnthropicClient implements the llm.Client interface for Anthropic's
// Messages API using its native wire format.
type AnthropicClient struct {
	cfg        llm.Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewAnthropicClient creates a new AnthropicClient from the given
// configuration. The configuration is not mutated after construction.
func NewAnthropicClient(cfg llm.Config, logger zerolog.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	return &AnthropicClient{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// Complete implements llm.Client.Complete.
func (c *AnthropicClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	resp, err := c.do(ctx, req, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var wireResp messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		return nil, fmt.Errorf("failed to decode Anthropic response: %w", err)
	}

	result := fromMessagesResponse(wireResp)
	c.logger.Debug().
		Str("model", result.Metadata.Model).
		Str("stop_reason", result.Metadata.StopReason).
		Int64("prompt_tokens", result.Usage.PromptTokens).
		Int64("completion_tokens", result.Usage.CompletionTokens).
		Msg("Anthropic completion finished")

	return result, nil
}

// Stream implements llm.Client.Stream. Errors from the provider surface
// before the first delta; transport errors mid-stream terminate the sequence
// through Stream.Err.
func (c *AnthropicClient) Stream(ctx context.Context, req *llm.Request) (llm.Stream, error) {
	resp, err := c.do(ctx, req, true)
	if err != nil {
		return nil, err
	}

	if resp.Body == nil {
		return nil, llm.NewStreamUnavailableError(providerName)
	}

	return sse.NewStream(resp.Body, extractStreamText), nil
}

// do builds and issues one Messages API exchange. On a non-2xx status the
// body is consumed and closed before the error is returned.
func (c *AnthropicClient) do(ctx context.Context, req *llm.Request, stream bool) (*http.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	body, err := json.Marshal(toMessagesRequest(c.cfg, req, stream))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Anthropic request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	c.logger.Debug().
		Str("endpoint", c.endpoint()).
		Str("model", c.cfg.Model).
		Bool("stream", stream).
		Int("messages", len(req.Messages)).
		Msg("Sending Anthropic request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, llm.NewNetworkError("request to Anthropic API failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close() //nolint:errcheck
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, llm.NewHTTPError(providerName, resp.StatusCode, string(errBody))
	}

	return resp, nil
}

// endpoint resolves the configured endpoint override, else the default.
func (c *AnthropicClient) endpoint() string {
	if c.cfg.Endpoint != "" {
		return c.cfg.Endpoint
	}
	return defaultEndpoint
}

// Ensure AnthropicClient implements llm.Client
var _ llm.Client = (*AnthropicClient)(nil)
