package anthropic

import (
	"encoding/json"
)

// streamEvent is the envelope of one Messages API streaming event.
//
// Anthropic SSE lifecycle:
//
//	message_start → content_block_start → content_block_delta(s) →
//	content_block_stop → message_delta → message_stop
//
// Only content_block_delta events of type text_delta carry response text;
// everything else is lifecycle bookkeeping.
type streamEvent struct {
	Type  string      `json:"type"`
	Delta streamDelta `json:"delta"`
}

type streamDelta struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// extractStreamText extracts the text delta from one decoded streaming event
// payload. Lifecycle events yield no text; a payload that is not valid JSON
// is reported as an error so the shared decoder can apply its skip policy.
func extractStreamText(payload []byte) (string, error) {
	var event streamEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return "", err
	}

	if event.Type == "content_block_delta" && event.Delta.Type == "text_delta" {
		return event.Delta.Text, nil
	}
	return "", nil
}
