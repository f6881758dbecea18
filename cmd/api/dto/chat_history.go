package dto

// AddMessageDTO is the body of POST /chat-history/:session_id.
type AddMessageDTO struct {
	Role    string `json:"role" binding:"required,oneof=user assistant system" example:"user"`
	Content string `json:"content" binding:"required" example:"hi"`
}
