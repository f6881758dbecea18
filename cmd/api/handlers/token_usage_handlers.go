package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/dto"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/repositories"
)

// UpdateUsageHandler godoc
// @Summary      Add token usage deltas
// @Description  Sums the deltas into the (user, session) ledger row, creating it if absent.
// @Tags         token-tracker
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateUsageDTO  true  "usage deltas"
// @Success      200   {object}  models.TokenUsage
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /token-tracker/usage [post]
func UpdateUsageHandler(repo *repositories.TokenUsageRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateUsageDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}

		usage, err := repo.AddUsage(c.Request.Context(), req.UserID, req.SessionID, req.PromptTokens, req.CompletionTokens, req.Metadata)
		if err != nil {
			logger.Log.Errorf("failed to update token usage (%s, %s): %v", req.UserID, req.SessionID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error updating token usage"})
			return
		}
		c.JSON(http.StatusOK, usage)
	}
}

// GetUsageHandler godoc
// @Summary      Get a (user, session) ledger row
// @Tags         token-tracker
// @Produce      json
// @Param        user_id     path      string  true  "user id"
// @Param        session_id  path      string  true  "session id"
// @Success      200         {object}  models.TokenUsage
// @Failure      404         {object}  dto.ErrorResponseDTO
// @Router       /token-tracker/usage/{user_id}/{session_id} [get]
func GetUsageHandler(repo *repositories.TokenUsageRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		sessionID := c.Param("session_id")

		usage, err := repo.Get(c.Request.Context(), userID, sessionID)
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "token usage not found"})
			return
		}
		if err != nil {
			logger.Log.Errorf("failed to get token usage (%s, %s): %v", userID, sessionID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error retrieving token usage"})
			return
		}
		c.JSON(http.StatusOK, usage)
	}
}

// ListUserUsageHandler godoc
// @Summary      List all ledger rows of a user
// @Tags         token-tracker
// @Produce      json
// @Param        user_id  path     string  true  "user id"
// @Success      200      {array}  models.TokenUsage
// @Router       /token-tracker/usage/{user_id} [get]
func ListUserUsageHandler(repo *repositories.TokenUsageRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")

		rows, err := repo.ListByUser(c.Request.Context(), userID)
		if err != nil {
			logger.Log.Errorf("failed to list token usage for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "error retrieving token usage"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
