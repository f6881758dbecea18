package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatSession is one conversation thread between a user and the assistant.
// Collection: chat_history
//
// session_id is the client-visible stable identifier, distinct from the
// store-assigned _id. The messages slice is strictly append-only; the only
// destructive operation is whole-session deletion.
type ChatSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	Messages  []Message          `bson:"messages" json:"messages"`
	Metadata  map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
