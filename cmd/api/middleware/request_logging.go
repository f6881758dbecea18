package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/trace"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
)

const (
	headerRequestID = "X-Request-Id"
)

// RequestLogging assigns every inbound request a request id, logs method,
// path, status and duration on completion, and includes a bounded body
// snippet for mutating requests.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}
		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		req = c.Request
		c.Writer.Header().Set(headerRequestID, requestID)

		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 &&
			(req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch || req.Method == http.MethodDelete) {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				const maxBodyLog = 1024
				if len(bodyBytes) > maxBodyLog {
					bodySnippet = string(bodyBytes[:maxBodyLog])
				} else {
					bodySnippet = string(bodyBytes)
				}
				// Restore the body so handlers can read it again.
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		c.Next()

		fields := logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		logger.InfoWithFields("completed request", fields)
	}
}
