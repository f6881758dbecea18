package messenger

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
)

const graphAPIBaseURL = "https://graph.facebook.com/v21.0"

// WebhookPayload is the delivery body posted by the messaging platform.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID        string            `json:"id,omitempty"`
	Time      int64             `json:"time,omitempty"`
	Messaging []MessagingEvent  `json:"messaging,omitempty"`
	Changes   []json.RawMessage `json:"changes,omitempty"`
}

type MessagingEvent struct {
	Sender    IDRef         `json:"sender"`
	Recipient IDRef         `json:"recipient"`
	Message   *MessageEvent `json:"message,omitempty"`
}

type IDRef struct {
	ID string `json:"id"`
}

type MessageEvent struct {
	MID  string `json:"mid,omitempty"`
	Text string `json:"text,omitempty"`
}

// VerifySignature checks the X-Hub-Signature-256 header against the raw
// request body. When no secret is configured or the platform sent no
// signature the check is skipped, matching the platform's setup flow where
// the app secret is optional.
func VerifySignature(appSecret string, body []byte, signatureHeader string) bool {
	if signatureHeader == "" || appSecret == "" {
		return true
	}

	parts := strings.SplitN(signatureHeader, "=", 2)
	if len(parts) != 2 {
		logger.Log.Warnf("messenger: malformed signature header")
		return false
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		logger.Log.Warn("messenger: invalid request signature")
		return false
	}
	return true
}

// Client sends replies back through the platform's send-message endpoint.
type Client struct {
	http       *resty.Client
	pageTokens map[string]string
}

func NewClient(pageTokens map[string]string) *Client {
	c := resty.New()
	c.SetBaseURL(graphAPIBaseURL)
	c.SetTimeout(10 * time.Second)

	return &Client{http: c, pageTokens: pageTokens}
}

type sendMessageRequest struct {
	Recipient IDRef           `json:"recipient"`
	Message   sendMessageText `json:"message"`
}

type sendMessageText struct {
	Text string `json:"text"`
}

// SendText relays a reply to the user through the page identified by
// pageID, using that page's configured access token.
func (c *Client) SendText(ctx context.Context, recipientID, pageID, text string) error {
	accessToken, ok := c.pageTokens[pageID]
	if !ok || accessToken == "" {
		return fmt.Errorf("no access token configured for page %s", pageID)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("access_token", accessToken).
		SetBody(sendMessageRequest{
			Recipient: IDRef{ID: recipientID},
			Message:   sendMessageText{Text: text},
		}).
		Post("/me/messages")
	if err != nil {
		return fmt.Errorf("send message to %s: %w", recipientID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("send message to %s: status %d: %s", recipientID, resp.StatusCode(), resp.String())
	}
	return nil
}
