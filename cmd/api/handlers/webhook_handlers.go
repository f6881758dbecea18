package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/trace"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/messenger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/services"
)

// VerifyWebhookHandler answers the messaging platform's subscription
// handshake: it echoes hub.challenge when the verify token matches.
func VerifyWebhookHandler(verifyToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := c.Query("hub.mode")
		token := c.Query("hub.verify_token")
		challenge := c.Query("hub.challenge")

		if mode == "" || token == "" {
			c.Status(http.StatusBadRequest)
			return
		}
		if mode != "subscribe" || token != verifyToken {
			c.Status(http.StatusForbidden)
			return
		}

		logger.Log.Info("webhook verified")
		c.String(http.StatusOK, challenge)
	}
}

// HandleWebhookHandler receives message deliveries. The body signature is
// verified before any processing; each text message event runs one
// conversational turn and the reply is relayed back through the send API.
func HandleWebhookHandler(appSecret string, chatSvc *services.ChatService, sender *messenger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		if !messenger.VerifySignature(appSecret, body, c.GetHeader("X-Hub-Signature-256")) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
			return
		}

		var payload messenger.WebhookPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}

		if payload.Object != "page" {
			c.Status(http.StatusNotFound)
			return
		}

		for _, entry := range payload.Entry {
			for _, event := range entry.Messaging {
				if event.Message == nil || event.Message.Text == "" {
					continue
				}

				result, err := chatSvc.Interact(c.Request.Context(), services.InteractInput{
					UserID:  event.Sender.ID,
					Message: event.Message.Text,
					Enhance: true,
				})
				if err != nil {
					logger.ErrorWithFields("webhook turn failed", logger.Fields{
						"request_id": trace.RequestIDFromContext(c.Request.Context()),
						"sender_id":  event.Sender.ID,
						"error":      err.Error(),
					})
					continue
				}

				if err := sender.SendText(c.Request.Context(), event.Sender.ID, event.Recipient.ID, result.Reply); err != nil {
					logger.ErrorWithFields("webhook relay failed", logger.Fields{
						"request_id": trace.RequestIDFromContext(c.Request.Context()),
						"sender_id":  event.Sender.ID,
						"error":      err.Error(),
					})
				}
			}
			if len(entry.Changes) > 0 {
				logger.Log.Infof("received non-messaging event: %d changes", len(entry.Changes))
			}
		}

		c.String(http.StatusOK, "EVENT_RECEIVED")
	}
}
