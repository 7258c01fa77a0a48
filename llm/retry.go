package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxElapsedTime is the default maximum elapsed time for backoff
	DefaultMaxElapsedTime = 5 * time.Minute
	// DefaultInitialDelay is the default initial delay for exponential backoff
	DefaultInitialDelay = 1 * time.Second
	// DefaultMaxInterval is the default maximum interval between retries
	DefaultMaxInterval = 1 * time.Minute
	// StandardMultiplier is the multiplier for exponential backoff
	StandardMultiplier = 2.0
	// StandardRandomizationFactor is the randomization factor for backoff
	StandardRandomizationFactor = 0.2
)

// RetryClient decorates a Client with exponential-backoff retries for
// retryable errors (rate limits, 5xx responses, transport failures).
//
// Provider clients never retry on their own; wrapping with RetryClient is how
// a calling layer opts into a retry policy. Streams retry only the initial
// exchange: once the first delta is available, a mid-stream failure is
// surfaced, never replayed.
type RetryClient struct {
	client         Client
	logger         zerolog.Logger
	maxElapsedTime time.Duration
	initialDelay   time.Duration
}

// NewRetryClient wraps client with the default retry policy.
func NewRetryClient(client Client, logger zerolog.Logger) *RetryClient {
	return &RetryClient{
		client:         client,
		logger:         logger,
		maxElapsedTime: DefaultMaxElapsedTime,
		initialDelay:   DefaultInitialDelay,
	}
}

// WithMaxElapsedTime overrides how long retries may continue in total and
// returns the client so calls can be chained.
func (c *RetryClient) WithMaxElapsedTime(d time.Duration) *RetryClient {
	c.maxElapsedTime = d
	return c
}

// WithInitialDelay overrides the delay before the first retry and returns
// the client so calls can be chained.
func (c *RetryClient) WithInitialDelay(d time.Duration) *RetryClient {
	c.initialDelay = d
	return c
}

// Complete implements Client.Complete with retries.
func (c *RetryClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	var resp *Response

	operation := func() error {
		var err error
		resp, err = c.client.Complete(ctx, req)
		return c.classify(err)
	}

	if err := backoff.Retry(operation, c.newBackOff(ctx)); err != nil {
		return nil, err
	}
	return resp, nil
}

// Stream implements Client.Stream, retrying the initial exchange only.
func (c *RetryClient) Stream(ctx context.Context, req *Request) (Stream, error) {
	var stream Stream

	operation := func() error {
		var err error
		stream, err = c.client.Stream(ctx, req)
		return c.classify(err)
	}

	if err := backoff.Retry(operation, c.newBackOff(ctx)); err != nil {
		return nil, err
	}
	return stream, nil
}

// classify marks non-retryable errors permanent so backoff stops, and logs
// the attempt otherwise.
func (c *RetryClient) classify(err error) error {
	if err == nil {
		return nil
	}
	if !IsRetryableError(err) {
		return backoff.Permanent(err)
	}

	evt := c.logger.Warn().Err(err)
	if retryAfter := ExtractRetryAfter(err); retryAfter != nil {
		evt = evt.Dur("retry_after", *retryAfter)
	}
	evt.Msg("Retrying LLM request")
	return err
}

func (c *RetryClient) newBackOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialDelay
	b.MaxInterval = DefaultMaxInterval
	b.MaxElapsedTime = c.maxElapsedTime
	b.Multiplier = StandardMultiplier
	b.RandomizationFactor = StandardRandomizationFactor
	return backoff.WithContext(b, ctx)
}

// Ensure RetryClient implements Client
var _ Client = (*RetryClient)(nil)
