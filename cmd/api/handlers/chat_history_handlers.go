package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/dto"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/models"
	"github.com/menotliam/Chatbot-AI-4Enterprise/repositories"
)

// AddMessageHandler godoc
// @Summary      Append a message to a session
// @Description  Adds a message to the chat session, creating the session first if it does not exist.
// @Tags         chat-history
// @Accept       json
// @Produce      json
// @Param        session_id  path      string            true  "session id"
// @Param        user_id     query     string            true  "user id"
// @Param        body        body      dto.AddMessageDTO true  "message"
// @Success      200         {object}  models.ChatSession
// @Failure      400         {object}  dto.ErrorResponseDTO
// @Failure      500         {object}  dto.ErrorResponseDTO
// @Router       /chat-history/{session_id} [post]
func AddMessageHandler(repo *repositories.ChatSessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "user_id is required"})
			return
		}

		var req dto.AddMessageDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}

		session, err := repo.AppendMessage(c.Request.Context(), sessionID, userID, models.NewMessage(req.Role, req.Content))
		if err != nil {
			logger.Log.Errorf("failed to add message to session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error adding message"})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// GetHistoryHandler godoc
// @Summary      Get a session's history
// @Tags         chat-history
// @Produce      json
// @Param        session_id  path      string  true  "session id"
// @Success      200         {object}  models.ChatSession
// @Failure      404         {object}  dto.ErrorResponseDTO
// @Router       /chat-history/{session_id} [get]
func GetHistoryHandler(repo *repositories.ChatSessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")

		session, err := repo.GetBySessionID(c.Request.Context(), sessionID)
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "chat session not found"})
			return
		}
		if err != nil {
			logger.Log.Errorf("failed to get session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error retrieving session"})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// ListUserSessionsHandler godoc
// @Summary      List a user's recent sessions
// @Description  Returns the user's sessions sorted by updated_at descending.
// @Tags         chat-history
// @Produce      json
// @Param        user_id  path      string  true   "user id"
// @Param        limit    query     int     false  "max sessions (1-50, default 10)"
// @Success      200      {array}   models.ChatSession
// @Router       /chat-history/user/{user_id} [get]
func ListUserSessionsHandler(repo *repositories.ChatSessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 || limit > 50 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "limit must be between 1 and 50"})
			return
		}

		sessions, err := repo.ListByUser(c.Request.Context(), userID, limit)
		if err != nil {
			logger.Log.Errorf("failed to list sessions for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error retrieving sessions"})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}

// DeleteSessionHandler godoc
// @Summary      Delete a session
// @Description  Hard-deletes the session document. The session's token usage ledger row is kept as an audit trail.
// @Tags         chat-history
// @Produce      json
// @Param        session_id  path      string  true  "session id"
// @Success      200         {object}  dto.MessageResponseDTO
// @Failure      404         {object}  dto.ErrorResponseDTO
// @Router       /chat-history/{session_id} [delete]
func DeleteSessionHandler(repo *repositories.ChatSessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")

		deleted, err := repo.Delete(c.Request.Context(), sessionID)
		if err != nil {
			logger.Log.Errorf("failed to delete session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error deleting session"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "chat session not found"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "Chat session deleted successfully"})
	}
}

// UpdateMetadataHandler godoc
// @Summary      Replace a session's metadata
// @Tags         chat-history
// @Accept       json
// @Produce      json
// @Param        session_id  path      string          true  "session id"
// @Param        body        body      map[string]any  true  "metadata"
// @Success      200         {object}  dto.MessageResponseDTO
// @Failure      404         {object}  dto.ErrorResponseDTO
// @Router       /chat-history/{session_id}/metadata [patch]
func UpdateMetadataHandler(repo *repositories.ChatSessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("session_id")

		var metadata map[string]any
		if err := c.ShouldBindJSON(&metadata); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid metadata body"})
			return
		}

		updated, err := repo.UpdateMetadata(c.Request.Context(), sessionID, metadata)
		if err != nil {
			logger.Log.Errorf("failed to update metadata for session %s: %v", sessionID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error updating metadata"})
			return
		}
		if !updated {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "chat session not found"})
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "Metadata updated successfully"})
	}
}
