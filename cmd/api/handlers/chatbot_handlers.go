package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/dto"
	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/trace"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/services"
)

// ChatInteractHandler godoc
// @Summary      Run one conversational turn
// @Description  Sends a user message to the assistant within a session and returns the reply with the full history.
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequestDTO  true  "chat request"
// @Success      200   {object}  dto.ChatResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /chatbot/interact [post]
func ChatInteractHandler(chatSvc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ChatRequestDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "message cannot be empty or contain only whitespace"})
			return
		}

		result, err := chatSvc.Interact(c.Request.Context(), services.InteractInput{
			SessionID: req.SessionID,
			UserID:    req.UserID,
			Message:   req.Message,
			Enhance:   req.Enhance(),
		})
		if err != nil {
			logger.ErrorWithFields("chatbot interact failed", logger.Fields{
				"request_id": trace.RequestIDFromContext(c.Request.Context()),
				"error":      err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "an internal server error occurred"})
			return
		}

		c.JSON(http.StatusOK, dto.ChatResponseDTO{
			SessionID: result.SessionID,
			Reply:     result.Reply,
			ReplyKind: string(result.ReplyKind),
			History:   result.History,
		})
	}
}

// ChatPageHandler renders the HTML chat page.
func ChatPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "chat.html", gin.H{})
	}
}
