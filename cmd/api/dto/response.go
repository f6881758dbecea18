package dto

// ErrorResponseDTO is the shared error response shape.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"chat session not found"`
}

// MessageResponseDTO is the shared confirmation response shape.
type MessageResponseDTO struct {
	Message string `json:"message" example:"Chat session deleted successfully"`
}
