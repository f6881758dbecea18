package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/menotliam/Chatbot-AI-4Enterprise/config"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
)

const (
	CollectionChatHistory = "chat_history"
	CollectionTokenUsage  = "token_usage"
)

// Mongo is an explicitly constructed persistence handle. It is created once
// at startup, passed to every repository, and closed by the host process.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes the MongoDB connection, verifies it with a ping and
// ensures the collection indexes.
func Connect(ctx context.Context, cfg config.AppConfig) (*Mongo, error) {
	uri := cfg.MongoURI
	if uri == "" {
		// Fallback for local docker-compose default
		uri = "mongodb://localhost:27017"
	}
	dbName := cfg.MongoDBName
	if dbName == "" {
		dbName = "auth"
	}

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cl, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := cl.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	m := &Mongo{client: cl, db: cl.Database(dbName)}
	if err := ensureIndexes(connectCtx, m.db); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	logger.Log.Infof("MongoDB connected (db=%s) and indexes ensured", dbName)
	return m, nil
}

func (m *Mongo) Database() *mongo.Database { return m.db }

// Ping checks connectivity, used by the health endpoint.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// chat_history: unique session_id, user_id + updated_at desc for listing
	{
		if _, err := d.Collection(CollectionChatHistory).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetName("uniq_session_id").SetUnique(true),
		}); err != nil {
			return err
		}
		if _, err := d.Collection(CollectionChatHistory).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_user_updated_at_desc"),
		}); err != nil {
			return err
		}
	}

	// token_usage: one ledger row per (user_id, session_id)
	{
		if _, err := d.Collection(CollectionTokenUsage).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "session_id", Value: 1}},
			Options: options.Index().SetName("uniq_user_session").SetUnique(true),
		}); err != nil {
			return err
		}
	}

	return nil
}
