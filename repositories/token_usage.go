package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/menotliam/Chatbot-AI-4Enterprise/db"
	"github.com/menotliam/Chatbot-AI-4Enterprise/models"
)

// TokenUsageRepository is the single writer of the token_usage collection.
// There is exactly one ledger row per (user_id, session_id) pair, enforced
// by a unique index.
type TokenUsageRepository struct {
	col *mongo.Collection
}

func NewTokenUsageRepository(database *mongo.Database) *TokenUsageRepository {
	return &TokenUsageRepository{col: database.Collection(db.CollectionTokenUsage)}
}

// CreateOrGet returns the ledger row for the pair, creating a zeroed one if
// none exists yet.
func (r *TokenUsageRepository) CreateOrGet(ctx context.Context, userID, sessionID string) (*models.TokenUsage, error) {
	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var usage models.TokenUsage
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "session_id": sessionID},
		bson.M{
			"$setOnInsert": bson.M{
				"user_id":           userID,
				"session_id":        sessionID,
				"prompt_tokens":     int64(0),
				"completion_tokens": int64(0),
				"total_tokens":      int64(0),
				"created_at":        now,
				"updated_at":        now,
			},
		},
		opts,
	).Decode(&usage)
	if err != nil {
		return nil, fmt.Errorf("create or get usage (%s, %s): %w", userID, sessionID, err)
	}
	return &usage, nil
}

// AddUsage adds the deltas into the ledger row as a single atomic
// find-and-modify upsert. Competing increments on the same key are
// serialized server-side, so no update is ever lost to a concurrent
// read-modify-write. total_tokens is incremented by the sum of both deltas
// and therefore always equals prompt_tokens + completion_tokens.
func (r *TokenUsageRepository) AddUsage(ctx context.Context, userID, sessionID string, promptTokens, completionTokens int64, metadata map[string]any) (*models.TokenUsage, error) {
	now := time.Now().UTC()

	set := bson.M{"updated_at": now}
	if metadata != nil {
		set["metadata"] = metadata
	}
	update := bson.M{
		"$inc": bson.M{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"total_tokens":      promptTokens + completionTokens,
		},
		"$set": set,
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"session_id": sessionID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var usage models.TokenUsage
	err := r.col.FindOneAndUpdate(ctx, bson.M{"user_id": userID, "session_id": sessionID}, update, opts).Decode(&usage)
	if err != nil {
		return nil, fmt.Errorf("add usage (%s, %s): %w", userID, sessionID, err)
	}
	return &usage, nil
}

// Get returns the ledger row for the pair, or ErrNotFound.
func (r *TokenUsageRepository) Get(ctx context.Context, userID, sessionID string) (*models.TokenUsage, error) {
	var usage models.TokenUsage
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "session_id": sessionID}).Decode(&usage)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find usage (%s, %s): %w", userID, sessionID, err)
	}
	return &usage, nil
}

// ListByUser returns every ledger row belonging to the user.
func (r *TokenUsageRepository) ListByUser(ctx context.Context, userID string) ([]models.TokenUsage, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list usage for user %s: %w", userID, err)
	}
	defer cur.Close(ctx)

	rows := []models.TokenUsage{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode usage for user %s: %w", userID, err)
	}
	return rows, nil
}
