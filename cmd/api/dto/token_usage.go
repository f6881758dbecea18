package dto

// UpdateUsageDTO is the body of POST /token-tracker/usage. Deltas are
// additive: they are summed into the existing counters.
type UpdateUsageDTO struct {
	UserID           string         `json:"user_id" binding:"required" example:"u1"`
	SessionID        string         `json:"session_id" binding:"required" example:"s1"`
	PromptTokens     int64          `json:"prompt_tokens" binding:"min=0" example:"10"`
	CompletionTokens int64          `json:"completion_tokens" binding:"min=0" example:"5"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}
