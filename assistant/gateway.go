package assistant

import (
	"context"
	"time"

	"github.com/menotliam/Chatbot-AI-4Enterprise/config"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/models"
)

// HistoryProvider supplies the bounded prior context of a session.
// Satisfied by repositories.ChatSessionRepository.
type HistoryProvider interface {
	LastMessages(ctx context.Context, sessionID string, n int) ([]models.Message, error)
}

// Gateway wraps the external conversational assistant. It never returns an
// error for external-service faults: every failure mode degrades to a
// tagged sentinel Reply with zero usage, so the caller always has a reply
// to persist and return.
type Gateway struct {
	client        *client
	history       HistoryProvider
	pollInterval  time.Duration
	maxAttempts   int
	historyWindow int
}

func NewGateway(cfg config.AppConfig, history HistoryProvider) *Gateway {
	return &Gateway{
		client:        newClient(cfg.Assistant.BaseURL, cfg.OpenAIAPIKey, cfg.OpenAIAssistantID),
		history:       history,
		pollInterval:  time.Duration(cfg.Assistant.PollIntervalMs) * time.Millisecond,
		maxAttempts:   cfg.Assistant.MaxPollAttempts,
		historyWindow: cfg.Assistant.HistoryWindow,
	}
}

// Generate submits the user message with up to historyWindow prior turns as
// context, runs the assistant and polls the run to a terminal state. The
// poll loop is bounded: after maxAttempts intervals the turn degrades to a
// timeout reply instead of waiting on the external run lifetime forever.
func (g *Gateway) Generate(ctx context.Context, userMessage, sessionID string) (Reply, Usage) {
	messages := g.contextWindow(ctx, sessionID)
	messages = append(messages, threadMessage{Role: models.RoleUser, Content: userMessage})

	t, err := g.client.createThread(ctx, messages)
	if err != nil {
		logger.Log.Errorf("assistant: %v", err)
		return commError()
	}

	r, err := g.client.createRun(ctx, t.ID)
	if err != nil {
		logger.Log.Errorf("assistant: %v", err)
		return commError()
	}

	attempts := 0
	for !isTerminal(r.Status) {
		if attempts >= g.maxAttempts {
			logger.Log.Errorf("assistant: run %s still %s after %d polls, giving up", r.ID, r.Status, attempts)
			return timedOut()
		}
		select {
		case <-time.After(g.pollInterval):
		case <-ctx.Done():
			logger.Log.Errorf("assistant: context cancelled while polling run %s: %v", r.ID, ctx.Err())
			return commError()
		}
		attempts++

		r, err = g.client.getRun(ctx, t.ID, r.ID)
		if err != nil {
			logger.Log.Errorf("assistant: %v", err)
			return commError()
		}
	}

	if r.Status != runStatusCompleted {
		logger.Log.Errorf("assistant: run %s ended with status %s", r.ID, r.Status)
		return failed()
	}

	threadMessages, err := g.client.listRunMessages(ctx, t.ID, r.ID)
	if err != nil {
		logger.Log.Errorf("assistant: %v", err)
		return commError()
	}

	text, ok := newestAssistantText(threadMessages)
	if !ok {
		return noReply()
	}

	usage := Usage{}
	if r.Usage != nil {
		usage = *r.Usage
	}
	return Reply{Kind: ReplyOK, Text: text}, usage
}

// contextWindow loads the last historyWindow stored messages of the
// session. History load failures are logged and treated as empty context;
// a missing context window must not abort the turn.
func (g *Gateway) contextWindow(ctx context.Context, sessionID string) []threadMessage {
	messages := []threadMessage{}
	if sessionID == "" || g.history == nil {
		return messages
	}

	prior, err := g.history.LastMessages(ctx, sessionID, g.historyWindow)
	if err != nil {
		logger.Log.Warnf("assistant: failed to load history for session %s: %v", sessionID, err)
		return messages
	}
	for _, m := range prior {
		messages = append(messages, threadMessage{Role: m.Role, Content: m.Content})
	}
	return messages
}

func isTerminal(status string) bool {
	switch status {
	case runStatusCompleted, runStatusFailed, runStatusCancelled:
		return true
	}
	return false
}

// newestAssistantText extracts the first text block of the newest message
// in the run's thread listing (the protocol returns newest first).
func newestAssistantText(messages []message) (string, bool) {
	if len(messages) == 0 {
		return "", false
	}
	for _, part := range messages[0].Content {
		if part.Type == "text" && part.Text != nil {
			return part.Text.Value, true
		}
	}
	return "", false
}
