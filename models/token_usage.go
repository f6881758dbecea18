package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenUsage is the cumulative usage ledger for a (user, session) pair.
// Collection: token_usage
//
// Exactly one row exists per (user_id, session_id). Counter updates are
// additive; total_tokens is always prompt_tokens + completion_tokens and is
// never set independently.
type TokenUsage struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	SessionID        string             `bson:"session_id" json:"session_id"`
	PromptTokens     int64              `bson:"prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int64              `bson:"completion_tokens" json:"completion_tokens"`
	TotalTokens      int64              `bson:"total_tokens" json:"total_tokens"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
	Metadata         map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
