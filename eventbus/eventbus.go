package eventbus

import (
	"context"
	"encoding/json"
)

// Event is the payload published to a topic.
type Event struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// TurnCompleted is published after every finished conversational turn. It
// feeds downstream analytics; publication is best-effort and never blocks
// or fails a turn.
type TurnCompleted struct {
	SessionID        string `json:"session_id"`
	UserID           string `json:"user_id"`
	ReplyKind        string `json:"reply_kind"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	MessageCount     int    `json:"message_count"`
}

// Publisher abstracts event publication so the orchestrator does not care
// whether a broker is configured.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}
