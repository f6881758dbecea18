package dto

import "github.com/menotliam/Chatbot-AI-4Enterprise/models"

// ChatRequestDTO is the body of POST /chatbot/interact.
// EnhanceResponse defaults to true when omitted.
type ChatRequestDTO struct {
	SessionID       string `json:"session_id" example:"1f0e7cde-65d4-4f6e-9072-1a327f6978ab"`
	UserID          string `json:"user_id" binding:"required" example:"u1"`
	Message         string `json:"message" binding:"required,max=4000" example:"What detergent do you recommend?"`
	EnhanceResponse *bool  `json:"enhance_response,omitempty"`
}

// Enhance resolves the optional enhance_response flag with its default.
func (r ChatRequestDTO) Enhance() bool {
	if r.EnhanceResponse == nil {
		return true
	}
	return *r.EnhanceResponse
}

// ChatResponseDTO is the completed turn.
type ChatResponseDTO struct {
	SessionID string           `json:"session_id"`
	Reply     string           `json:"reply"`
	ReplyKind string           `json:"reply_kind"`
	History   []models.Message `json:"history"`
}
