package models

import "time"

// Message roles. The stored history only ever contains these three.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single turn in a conversation. Messages are immutable once
// appended to a session; ordering is append order.
type Message struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// NewMessage builds a message stamped with the current time.
func NewMessage(role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}
