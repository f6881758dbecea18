package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menotliam/Chatbot-AI-4Enterprise/assistant"
	"github.com/menotliam/Chatbot-AI-4Enterprise/eventbus"
	"github.com/menotliam/Chatbot-AI-4Enterprise/models"
	"github.com/menotliam/Chatbot-AI-4Enterprise/services"
)

// fakeSessionStore keeps sessions in memory with the same append-only
// semantics as the Mongo repository.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.ChatSession
	calls    []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*models.ChatSession{}}
}

func (f *fakeSessionStore) CreateOrGet(ctx context.Context, sessionID, userID string) (*models.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create_or_get")

	if sessionID != "" {
		if s, ok := f.sessions[sessionID]; ok {
			copied := *s
			return &copied, nil
		}
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	s := &models.ChatSession{SessionID: sessionID, UserID: userID, Messages: []models.Message{}}
	f.sessions[sessionID] = s
	copied := *s
	return &copied, nil
}

func (f *fakeSessionStore) AppendMessage(ctx context.Context, sessionID, userID string, msg models.Message) (*models.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "append:"+msg.Role)

	s, ok := f.sessions[sessionID]
	if !ok {
		s = &models.ChatSession{SessionID: sessionID, UserID: userID}
		f.sessions[sessionID] = s
	}
	s.Messages = append(s.Messages, msg)
	copied := *s
	copied.Messages = append([]models.Message{}, s.Messages...)
	return &copied, nil
}

// fakeLedger accumulates deltas atomically, like the upsert-based
// repository.
type fakeLedger struct {
	mu   sync.Mutex
	rows map[string]*models.TokenUsage
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: map[string]*models.TokenUsage{}}
}

func (f *fakeLedger) AddUsage(ctx context.Context, userID, sessionID string, promptTokens, completionTokens int64, metadata map[string]any) (*models.TokenUsage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := userID + "/" + sessionID
	row, ok := f.rows[key]
	if !ok {
		row = &models.TokenUsage{UserID: userID, SessionID: sessionID}
		f.rows[key] = row
	}
	row.PromptTokens += promptTokens
	row.CompletionTokens += completionTokens
	row.TotalTokens += promptTokens + completionTokens
	if metadata != nil {
		row.Metadata = metadata
	}
	copied := *row
	return &copied, nil
}

type fakeGenerator struct {
	mu     sync.Mutex
	reply  assistant.Reply
	usage  assistant.Usage
	calls  []string
	onCall func()
}

func (f *fakeGenerator) Generate(ctx context.Context, userMessage, sessionID string) (assistant.Reply, assistant.Usage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userMessage)
	if f.onCall != nil {
		f.onCall()
	}
	return f.reply, f.usage
}

type fakeRewriter struct {
	out    string
	called bool
}

func (f *fakeRewriter) Rewrite(ctx context.Context, rawReply, originalMessage string) string {
	f.called = true
	if f.out == "" {
		return rawReply
	}
	return f.out
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, topic string, event eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() {}

func okReply(text string) assistant.Reply {
	return assistant.Reply{Kind: assistant.ReplyOK, Text: text}
}

func TestInteractHappyPath(t *testing.T) {
	store := newFakeSessionStore()
	ledger := newFakeLedger()
	gen := &fakeGenerator{
		reply: okReply("raw answer"),
		usage: assistant.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	rw := &fakeRewriter{out: "polished answer"}
	pub := &capturingPublisher{}
	svc := services.NewChatService(store, ledger, gen, rw, pub, "gpt-4.1")

	result, err := svc.Interact(context.Background(), services.InteractInput{
		UserID:  "u1",
		Message: "hi",
		Enhance: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, "polished answer", result.Reply)
	assert.Equal(t, assistant.ReplyOK, result.ReplyKind)
	require.Len(t, result.History, 2)
	assert.Equal(t, models.RoleUser, result.History[0].Role)
	assert.Equal(t, "hi", result.History[0].Content)
	assert.Equal(t, models.RoleAssistant, result.History[1].Role)
	assert.Equal(t, "polished answer", result.History[1].Content)

	row := ledger.rows["u1/"+result.SessionID]
	require.NotNil(t, row)
	assert.Equal(t, int64(10), row.PromptTokens)
	assert.Equal(t, int64(5), row.CompletionTokens)
	assert.Equal(t, int64(15), row.TotalTokens)
	assert.Equal(t, "gpt-4.1", row.Metadata["model"])
	assert.Equal(t, "chat", row.Metadata["interaction_type"])
	assert.Equal(t, 2, row.Metadata["message_count"])

	require.Len(t, pub.events, 1)
}

func TestInteractPersistsUserMessageBeforeGeneration(t *testing.T) {
	store := newFakeSessionStore()
	gen := &fakeGenerator{reply: okReply("answer")}

	var appendsAtGenerate int
	gen.onCall = func() {
		for _, call := range store.calls {
			if call == "append:user" {
				appendsAtGenerate++
			}
		}
	}

	svc := services.NewChatService(store, newFakeLedger(), gen, nil, nil, "gpt-4.1")
	_, err := svc.Interact(context.Background(), services.InteractInput{UserID: "u1", Message: "hi"})
	require.NoError(t, err)

	assert.Equal(t, 1, appendsAtGenerate, "the user turn must be persisted before the external call")
}

func TestInteractSentinelReplyStillCompletesTurn(t *testing.T) {
	store := newFakeSessionStore()
	ledger := newFakeLedger()
	gen := &fakeGenerator{
		reply: assistant.Reply{Kind: assistant.ReplyFailed, Text: "[Assistant failed to generate a response.]"},
	}
	rw := &fakeRewriter{out: "should not be used"}
	svc := services.NewChatService(store, ledger, gen, rw, nil, "gpt-4.1")

	result, err := svc.Interact(context.Background(), services.InteractInput{
		UserID:  "u1",
		Message: "hi",
		Enhance: true,
	})
	require.NoError(t, err)

	assert.Equal(t, assistant.ReplyFailed, result.ReplyKind)
	assert.Equal(t, "[Assistant failed to generate a response.]", result.Reply)
	assert.False(t, rw.called, "degraded replies are not sent through the enhancer")
	require.Len(t, result.History, 2, "both turns are persisted even when generation fails")

	row := ledger.rows["u1/"+result.SessionID]
	require.NotNil(t, row)
	assert.Zero(t, row.TotalTokens)
}

func TestInteractEnhanceDisabledSkipsRewriter(t *testing.T) {
	store := newFakeSessionStore()
	gen := &fakeGenerator{reply: okReply("raw answer")}
	rw := &fakeRewriter{out: "polished"}
	svc := services.NewChatService(store, newFakeLedger(), gen, rw, nil, "gpt-4.1")

	result, err := svc.Interact(context.Background(), services.InteractInput{
		UserID:  "u1",
		Message: "hi",
		Enhance: false,
	})
	require.NoError(t, err)

	assert.False(t, rw.called)
	assert.Equal(t, "raw answer", result.Reply)
}

func TestInteractStripsSymbolsFromReply(t *testing.T) {
	store := newFakeSessionStore()
	gen := &fakeGenerator{reply: okReply("Great pick! \U0001F389\U0001F600")}
	svc := services.NewChatService(store, newFakeLedger(), gen, nil, nil, "gpt-4.1")

	result, err := svc.Interact(context.Background(), services.InteractInput{UserID: "u1", Message: "hi"})
	require.NoError(t, err)

	assert.Equal(t, "Great pick! ", result.Reply)
	assert.Equal(t, "Great pick! ", result.History[1].Content)
}

func TestInteractReusesExistingSession(t *testing.T) {
	store := newFakeSessionStore()
	gen := &fakeGenerator{reply: okReply("a")}
	svc := services.NewChatService(store, newFakeLedger(), gen, nil, nil, "gpt-4.1")

	first, err := svc.Interact(context.Background(), services.InteractInput{UserID: "u1", Message: "one"})
	require.NoError(t, err)
	second, err := svc.Interact(context.Background(), services.InteractInput{
		SessionID: first.SessionID,
		UserID:    "u1",
		Message:   "two",
	})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, second.History, 4, "history length is non-decreasing across turns")
}

func TestInteractLedgerAdditivityAcrossTurns(t *testing.T) {
	store := newFakeSessionStore()
	ledger := newFakeLedger()
	gen := &fakeGenerator{
		reply: okReply("a"),
		usage: assistant.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	svc := services.NewChatService(store, ledger, gen, nil, nil, "gpt-4.1")

	first, err := svc.Interact(context.Background(), services.InteractInput{UserID: "u1", Message: "one"})
	require.NoError(t, err)

	gen.mu.Lock()
	gen.usage = assistant.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5}
	gen.mu.Unlock()

	_, err = svc.Interact(context.Background(), services.InteractInput{
		SessionID: first.SessionID,
		UserID:    "u1",
		Message:   "two",
	})
	require.NoError(t, err)

	row := ledger.rows["u1/"+first.SessionID]
	require.NotNil(t, row)
	assert.Equal(t, int64(13), row.PromptTokens)
	assert.Equal(t, int64(7), row.CompletionTokens)
	assert.Equal(t, int64(20), row.TotalTokens)
}

func TestInteractConcurrentTurnsSameSessionLoseNoUsage(t *testing.T) {
	store := newFakeSessionStore()
	ledger := newFakeLedger()
	gen := &fakeGenerator{
		reply: okReply("a"),
		usage: assistant.Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2},
	}
	svc := services.NewChatService(store, ledger, gen, nil, nil, "gpt-4.1")

	seed, err := svc.Interact(context.Background(), services.InteractInput{UserID: "u1", Message: "seed"})
	require.NoError(t, err)

	const turns = 20
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Interact(context.Background(), services.InteractInput{
				SessionID: seed.SessionID,
				UserID:    "u1",
				Message:   "m",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	row := ledger.rows["u1/"+seed.SessionID]
	require.NotNil(t, row)
	assert.Equal(t, int64(turns+1), row.PromptTokens)
	assert.Equal(t, int64(turns+1), row.CompletionTokens)
	assert.Equal(t, int64(2*(turns+1)), row.TotalTokens)
}
