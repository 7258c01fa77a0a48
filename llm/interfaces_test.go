package llm

import (
	"context"
	"errors"
	"testing"
)

// fakeStream is an in-memory Stream for middleware and helper tests.
type fakeStream struct {
	deltas []string
	pos    int
	err    error
	closed bool
}

func (s *fakeStream) Next() bool {
	if s.pos >= len(s.deltas) {
		return false
	}
	s.pos++
	return true
}

func (s *fakeStream) Delta() string { return s.deltas[s.pos-1] }
func (s *fakeStream) Err() error    { return s.err }
func (s *fakeStream) Close() error  { s.closed = true; return nil }

// fakeClient is an in-memory Client that returns scripted results.
type fakeClient struct {
	resp      *Response
	stream    Stream
	errs      []error // one per call; last entry repeats
	completes int
	streams   int
}

func (c *fakeClient) nextErr(call int) error {
	if len(c.errs) == 0 {
		return nil
	}
	if call >= len(c.errs) {
		return c.errs[len(c.errs)-1]
	}
	return c.errs[call]
}

func (c *fakeClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	err := c.nextErr(c.completes)
	c.completes++
	if err != nil {
		return nil, err
	}
	return c.resp, nil
}

func (c *fakeClient) Stream(ctx context.Context, req *Request) (Stream, error) {
	err := c.nextErr(c.streams)
	c.streams++
	if err != nil {
		return nil, err
	}
	return c.stream, nil
}

func TestCollectStream(t *testing.T) {
	stream := &fakeStream{deltas: []string{"Hello", " ", "world"}}
	text, err := CollectStream(stream)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "Hello world" {
		t.Errorf("Expected 'Hello world', got %q", text)
	}
	if !stream.closed {
		t.Error("Expected stream to be closed after collection")
	}
}

func TestCollectStream_Error(t *testing.T) {
	streamErr := errors.New("mid-stream failure")
	stream := &fakeStream{deltas: []string{"partial"}, err: streamErr}
	text, err := CollectStream(stream)
	if !errors.Is(err, streamErr) {
		t.Errorf("Expected stream error, got %v", err)
	}
	if text != "partial" {
		t.Errorf("Expected accumulated text 'partial', got %q", text)
	}
}

func TestWrapWithMiddleware_NoMiddleware(t *testing.T) {
	client := &fakeClient{resp: &Response{Text: "ok"}}
	if wrapped := WrapWithMiddleware(client); wrapped != Client(client) {
		t.Error("Expected the same client back when no middleware is given")
	}
}

func TestWrapWithMiddleware_Complete(t *testing.T) {
	client := &fakeClient{resp: &Response{Text: "ok", Metadata: Metadata{Model: "m"}}}

	var sawRequest, sawResponse bool
	mw := MiddlewareFunc{
		BeforeRequestFunc: func(ctx context.Context, req *Request) (*Request, error) {
			sawRequest = true
			return req, nil
		},
		AfterResponseFunc: func(ctx context.Context, req *Request, resp *Response) (*Response, error) {
			sawResponse = true
			return resp, nil
		},
	}

	wrapped := WrapWithMiddleware(client, mw)
	resp, err := wrapped.Complete(context.Background(), &Request{Messages: []Message{NewTextMessage(RoleUser, "hi")}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Expected response text 'ok', got %q", resp.Text)
	}
	if !sawRequest || !sawResponse {
		t.Error("Expected both middleware hooks to run")
	}
}

func TestWrapWithMiddleware_BeforeRequestAborts(t *testing.T) {
	client := &fakeClient{resp: &Response{Text: "ok"}}
	abort := errors.New("aborted")
	mw := MiddlewareFunc{
		BeforeRequestFunc: func(ctx context.Context, req *Request) (*Request, error) {
			return nil, abort
		},
	}

	wrapped := WrapWithMiddleware(client, mw)
	_, err := wrapped.Complete(context.Background(), &Request{})
	if !errors.Is(err, abort) {
		t.Errorf("Expected abort error, got %v", err)
	}
	if client.completes != 0 {
		t.Error("Expected the underlying client not to be called")
	}
}

func TestWrapWithMiddleware_StreamDeltas(t *testing.T) {
	client := &fakeClient{stream: &fakeStream{deltas: []string{"a", "b"}}}

	logging := NewLoggingMiddleware(testLogger())
	wrapped := WrapWithMiddleware(client, logging)

	stream, err := wrapped.Stream(context.Background(), &Request{Messages: []Message{NewTextMessage(RoleUser, "hi")}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	text, err := CollectStream(stream)
	if err != nil {
		t.Fatalf("Unexpected stream error: %v", err)
	}
	if text != "ab" {
		t.Errorf("Expected 'ab', got %q", text)
	}
}
