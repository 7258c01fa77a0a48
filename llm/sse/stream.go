// Package sse decodes newline-delimited "data:" framed streaming responses
// into a lazy sequence of text deltas. The decoding loop is shared across
// providers; only the per-event text extraction differs.
package sse

import (
	"bufio"
	"io"
	"strings"

	"github.com/promptdhq/promptd/llm"
)

// doneSentinel is the literal payload that terminates a stream.
const doneSentinel = "[DONE]"

// ExtractFunc parses one decoded event payload and returns the text delta it
// carries, if any. Returning an empty string with a nil error means the event
// carries no text (for example a lifecycle or keep-alive event). Returning an
// error marks the payload as malformed.
type ExtractFunc func(payload []byte) (string, error)

// Stream implements llm.Stream over a raw response body.
//
// Frames may be split arbitrarily across chunk deliveries; the underlying
// buffered reader accumulates bytes until a complete line is available. A
// trailing partial line at end of stream is discarded. Malformed payloads are
// skipped by default so one corrupt event does not abandon the rest of the
// stream; WithStrict surfaces them as stream errors instead.
type Stream struct {
	reader  *bufio.Reader
	body    io.Closer
	extract ExtractFunc
	strict  bool
	delta   string
	err     error
	done    bool
	closed  bool
}

// NewStream creates a Stream that decodes events from body and extracts text
// deltas with extract. The caller owns the stream and must Close it.
func NewStream(body io.ReadCloser, extract ExtractFunc) *Stream {
	return &Stream{
		reader:  bufio.NewReader(body),
		body:    body,
		extract: extract,
	}
}

// WithStrict controls the malformed-payload policy and returns the stream so
// calls can be chained. When strict, a payload the extractor rejects ends the
// stream with that error instead of being skipped.
func (s *Stream) WithStrict(strict bool) *Stream {
	s.strict = strict
	return s
}

// Next advances to the next text delta.
func (s *Stream) Next() bool {
	if s.done || s.closed || s.err != nil {
		return false
	}

	for {
		line, readErr := s.reader.ReadString('\n')
		if readErr != nil {
			// A partial trailing line without a newline is discarded rather
			// than salvaged; there is no way to know whether it was complete.
			if readErr != io.EOF && !s.closed {
				s.err = llm.NewNetworkError("stream read failed", readErr)
			}
			s.done = true
			return false
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		// SSE comment lines used as keep-alives.
		if strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == doneSentinel {
			s.done = true
			return false
		}

		text, err := s.extract([]byte(payload))
		if err != nil {
			if s.strict {
				s.err = err
				s.done = true
				return false
			}
			// Malformed event: skip and keep decoding. This trades
			// completeness for availability; strict mode is the escape hatch.
			continue
		}
		if text == "" {
			continue
		}

		s.delta = text
		return true
	}
}

// Delta returns the current text fragment.
func (s *Stream) Delta() string {
	return s.delta
}

// Err returns any error that occurred during streaming.
func (s *Stream) Err() error {
	return s.err
}

// Close closes the underlying response body, aborting the network exchange
// if the stream has not been fully consumed.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}

// Ensure Stream implements llm.Stream
var _ llm.Stream = (*Stream)(nil)
