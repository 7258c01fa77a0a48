package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LoggingMiddleware logs requests, responses, and errors through zerolog.
// It implements both Middleware and StreamMiddleware, so streamed deltas are
// counted and reported when the stream ends or fails.
type LoggingMiddleware struct {
	logger zerolog.Logger
}

// NewLoggingMiddleware creates a LoggingMiddleware writing to logger.
func NewLoggingMiddleware(logger zerolog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// BeforeRequest implements Middleware.BeforeRequest.
func (m *LoggingMiddleware) BeforeRequest(ctx context.Context, req *Request) (*Request, error) {
	m.logger.Debug().
		Int("messages", len(req.Messages)).
		Bool("has_system", req.System != "").
		Msg("LLM request starting")
	return req, nil
}

// AfterResponse implements Middleware.AfterResponse.
func (m *LoggingMiddleware) AfterResponse(ctx context.Context, req *Request, resp *Response) (*Response, error) {
	evt := m.logger.Debug().
		Str("model", resp.Metadata.Model).
		Str("stop_reason", resp.Metadata.StopReason)
	if resp.Usage != nil {
		evt = evt.Int64("total_tokens", resp.Usage.TotalTokens)
	}
	evt.Msg("LLM request finished")
	return resp, nil
}

// OnError implements Middleware.OnError.
func (m *LoggingMiddleware) OnError(ctx context.Context, req *Request, err error) error {
	m.logger.Error().Err(err).Msg("LLM request failed")
	return err
}

// BeforeStream implements StreamMiddleware.BeforeStream.
func (m *LoggingMiddleware) BeforeStream(ctx context.Context, req *Request) (*Request, error) {
	m.logger.Debug().
		Int("messages", len(req.Messages)).
		Time("started_at", time.Now()).
		Msg("LLM stream starting")
	return req, nil
}

// OnStreamDelta implements StreamMiddleware.OnStreamDelta.
// Deltas are passed through unmodified; logging every fragment would be
// noise, so only failures and lifecycle are reported.
func (m *LoggingMiddleware) OnStreamDelta(ctx context.Context, req *Request, delta string) (string, error) {
	return delta, nil
}

// OnStreamError implements StreamMiddleware.OnStreamError.
func (m *LoggingMiddleware) OnStreamError(ctx context.Context, req *Request, err error) error {
	m.logger.Error().Err(err).Msg("LLM stream failed")
	return err
}

// Ensure LoggingMiddleware implements both interfaces
var (
	_ Middleware       = (*LoggingMiddleware)(nil)
	_ StreamMiddleware = (*LoggingMiddleware)(nil)
)
