package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/menotliam/Chatbot-AI-4Enterprise/assistant"
	"github.com/menotliam/Chatbot-AI-4Enterprise/enhancer"
	"github.com/menotliam/Chatbot-AI-4Enterprise/eventbus"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/models"
)

// SessionStore is the slice of the session repository the orchestrator
// needs. Satisfied by repositories.ChatSessionRepository.
type SessionStore interface {
	CreateOrGet(ctx context.Context, sessionID, userID string) (*models.ChatSession, error)
	AppendMessage(ctx context.Context, sessionID, userID string, msg models.Message) (*models.ChatSession, error)
}

// UsageLedger accumulates token deltas. Satisfied by
// repositories.TokenUsageRepository.
type UsageLedger interface {
	AddUsage(ctx context.Context, userID, sessionID string, promptTokens, completionTokens int64, metadata map[string]any) (*models.TokenUsage, error)
}

// Generator produces a reply for a user message with session context.
// Satisfied by assistant.Gateway.
type Generator interface {
	Generate(ctx context.Context, userMessage, sessionID string) (assistant.Reply, assistant.Usage)
}

// Rewriter post-processes a raw reply. Satisfied by enhancer.Enhancer.
type Rewriter interface {
	Rewrite(ctx context.Context, rawReply, originalMessage string) string
}

// ChatService runs the end-to-end conversational turn: resolve session,
// persist the user message, generate, optionally enhance, persist the
// reply, record usage. The user message is persisted before the external
// call so the log always reflects what was asked, and no earlier state is
// rolled back when a later one fails: history is an append-only audit
// trail, not a transaction spanning the external call.
type ChatService struct {
	sessions SessionStore
	usage    UsageLedger
	gateway  Generator
	rewriter Rewriter
	events   eventbus.Publisher
	model    string
}

func NewChatService(sessions SessionStore, usage UsageLedger, gateway Generator, rewriter Rewriter, events eventbus.Publisher, model string) *ChatService {
	return &ChatService{
		sessions: sessions,
		usage:    usage,
		gateway:  gateway,
		rewriter: rewriter,
		events:   events,
		model:    model,
	}
}

// InteractInput is one requested turn. SessionID may be empty for a new
// conversation.
type InteractInput struct {
	SessionID string
	UserID    string
	Message   string
	Enhance   bool
}

// InteractResult is the completed turn returned to the caller.
type InteractResult struct {
	SessionID string
	Reply     string
	ReplyKind assistant.ReplyKind
	History   []models.Message
}

// Interact executes one turn. Faults from the assistant and the enhancer
// degrade to sentinel or raw content and never abort the turn; faults from
// persistence surface as errors.
func (s *ChatService) Interact(ctx context.Context, in InteractInput) (*InteractResult, error) {
	session, err := s.sessions.CreateOrGet(ctx, in.SessionID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	sessionID := session.SessionID

	if _, err := s.sessions.AppendMessage(ctx, sessionID, in.UserID, models.NewMessage(models.RoleUser, in.Message)); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	reply, usage := s.gateway.Generate(ctx, in.Message, sessionID)

	text := reply.Text
	if in.Enhance && reply.OK() && s.rewriter != nil {
		text = s.rewriter.Rewrite(ctx, reply.Text, in.Message)
	}
	// The generating models are not trusted to honor the no-symbols rule,
	// so the reply is stripped on every path before it is persisted.
	text = enhancer.StripSymbols(text)

	session, err = s.sessions.AppendMessage(ctx, sessionID, in.UserID, models.NewMessage(models.RoleAssistant, text))
	if err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}

	if _, err := s.usage.AddUsage(ctx, in.UserID, sessionID, usage.PromptTokens, usage.CompletionTokens, map[string]any{
		"model":            s.model,
		"interaction_type": "chat",
		"message_count":    len(session.Messages),
	}); err != nil {
		return nil, fmt.Errorf("record token usage: %w", err)
	}

	s.publishTurn(ctx, sessionID, in.UserID, reply.Kind, usage, len(session.Messages))

	return &InteractResult{
		SessionID: sessionID,
		Reply:     text,
		ReplyKind: reply.Kind,
		History:   session.Messages,
	}, nil
}

// publishTurn emits the turn-completed event when a broker is configured.
// Publication failures are logged, never propagated.
func (s *ChatService) publishTurn(ctx context.Context, sessionID, userID string, kind assistant.ReplyKind, usage assistant.Usage, messageCount int) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(eventbus.TurnCompleted{
		SessionID:        sessionID,
		UserID:           userID,
		ReplyKind:        string(kind),
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		MessageCount:     messageCount,
	})
	if err != nil {
		logger.Log.Errorf("marshal turn event for session %s: %v", sessionID, err)
		return
	}

	event := eventbus.Event{ID: uuid.New().String(), Payload: payload}
	if err := s.events.Publish(ctx, eventbus.TopicTurnEvents, event); err != nil {
		logger.Log.Errorf("publish turn event for session %s: %v", sessionID, err)
	}
}
