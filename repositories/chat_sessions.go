package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/menotliam/Chatbot-AI-4Enterprise/db"
	"github.com/menotliam/Chatbot-AI-4Enterprise/models"
)

// ChatSessionRepository is the single writer of the chat_history collection.
type ChatSessionRepository struct {
	col *mongo.Collection
}

func NewChatSessionRepository(database *mongo.Database) *ChatSessionRepository {
	return &ChatSessionRepository{col: database.Collection(db.CollectionChatHistory)}
}

// CreateOrGet returns the session with the given session_id, creating an
// empty one if none exists yet. When sessionID is empty a fresh identifier
// is generated. The lookup and the insert are a single find-and-modify
// upsert, so concurrent first turns on the same id converge on one
// document and the loser observes the winner's session unchanged instead
// of tripping the unique session_id index.
func (r *ChatSessionRepository) CreateOrGet(ctx context.Context, sessionID, userID string) (*models.ChatSession, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var session models.ChatSession
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$setOnInsert": bson.M{
				"session_id": sessionID,
				"user_id":    userID,
				"created_at": now,
				"updated_at": now,
				"messages":   []models.Message{},
			},
		},
		opts,
	).Decode(&session)
	if err != nil {
		return nil, fmt.Errorf("create or get session %s: %w", sessionID, err)
	}
	return &session, nil
}

// AppendMessage appends one message to the session and bumps updated_at in
// a single atomic update. A session that does not exist yet is created
// first, so an append never fails just because the session is new. The
// post-append session is re-read so the caller observes the authoritative
// persisted state rather than a locally mutated copy.
func (r *ChatSessionRepository) AppendMessage(ctx context.Context, sessionID, userID string, msg models.Message) (*models.ChatSession, error) {
	session, err := r.CreateOrGet(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	sessionID = session.SessionID

	res, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{
			"$push": bson.M{"messages": msg},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("append message to session %s: %w", sessionID, err)
	}
	if res.ModifiedCount == 0 {
		return nil, &PersistenceError{Op: "append message", Key: sessionID}
	}

	var updated models.ChatSession
	if err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&updated); err != nil {
		return nil, fmt.Errorf("reload session %s: %w", sessionID, err)
	}
	return &updated, nil
}

// GetBySessionID is a pure read. Returns ErrNotFound for unknown ids.
func (r *ChatSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := r.col.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session %s: %w", sessionID, err)
	}
	return &session, nil
}

// LastMessages returns up to n most recent messages of the session in their
// stored order. Unknown sessions yield an empty slice, not an error.
func (r *ChatSessionRepository) LastMessages(ctx context.Context, sessionID string, n int) ([]models.Message, error) {
	session, err := r.GetBySessionID(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	msgs := session.Messages
	if n > 0 && len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return msgs, nil
}

// ListByUser returns the user's sessions sorted by updated_at descending,
// capped at limit.
func (r *ChatSessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatSession, error) {
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions for user %s: %w", userID, err)
	}
	defer cur.Close(ctx)

	sessions := []models.ChatSession{}
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions for user %s: %w", userID, err)
	}
	return sessions, nil
}

// Delete removes the session document. Ledger rows are kept: token usage is
// an audit trail with a lifecycle independent of its session.
func (r *ChatSessionRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return false, fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return res.DeletedCount > 0, nil
}

// UpdateMetadata replaces the session metadata wholesale and bumps
// updated_at. Returns false when no matching session was modified.
func (r *ChatSessionRepository) UpdateMetadata(ctx context.Context, sessionID string, metadata map[string]any) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"metadata": metadata, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("update metadata for session %s: %w", sessionID, err)
	}
	return res.ModifiedCount > 0, nil
}
