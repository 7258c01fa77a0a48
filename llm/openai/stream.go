package openai

import (
	"encoding/json"
	"strings"
)

// streamChunk is one Chat Completions streaming event. Text arrives as
// choices[].delta.content fragments; the final chunk carries only a finish
// reason before the [DONE] sentinel.
type streamChunk struct {
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Delta chunkDelta `json:"delta"`
}

type chunkDelta struct {
	Content string `json:"content"`
}

// extractStreamText extracts the text delta from one decoded streaming chunk
// payload. Chunks without content yield no text; a payload that is not valid
// JSON is reported as an error so the shared decoder can apply its skip
// policy.
func extractStreamText(payload []byte) (string, error) {
	var chunk streamChunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return "", err
	}

	var text strings.Builder
	for _, c := range chunk.Choices {
		text.WriteString(c.Delta.Content)
	}
	return text.String(), nil
}
