package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/menotliam/Chatbot-AI-4Enterprise/repositories"
)

func sessionDoc(sessionID, userID string, messages bson.A) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "session_id", Value: sessionID},
		{Key: "user_id", Value: userID},
		{Key: "messages", Value: messages},
	}
}

func TestCreateOrGetSession(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns an existing session unchanged", func(mt *mtest.T) {
		repo := repositories.NewChatSessionRepository(mt.DB)

		existing := sessionDoc("s1", "original-owner", bson.A{
			bson.D{{Key: "role", Value: "user"}, {Key: "content", Value: "hello"}},
		})
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: existing}})

		got, err := repo.CreateOrGet(context.Background(), "s1", "late-caller")
		require.NoError(mt, err)

		assert.Equal(mt, "s1", got.SessionID)
		assert.Equal(mt, "original-owner", got.UserID)
		require.Len(mt, got.Messages, 1)
		assert.Equal(mt, "hello", got.Messages[0].Content)
	})

	mt.Run("resolves the session in a single atomic upsert", func(mt *mtest.T) {
		repo := repositories.NewChatSessionRepository(mt.DB)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: sessionDoc("s2", "u1", bson.A{})},
		})

		_, err := repo.CreateOrGet(context.Background(), "s2", "u1")
		require.NoError(mt, err)

		// A find-then-insert pair would race against the unique session_id
		// index under concurrent first turns. The operation must be exactly
		// one findAndModify with upsert, which the server serializes.
		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		assert.Equal(mt, "findAndModify", ev.CommandName)

		upsert, err := ev.Command.LookupErr("upsert")
		require.NoError(mt, err)
		assert.True(mt, upsert.Boolean())

		update, err := ev.Command.LookupErr("update", "$setOnInsert", "session_id")
		require.NoError(mt, err)
		assert.Equal(mt, "s2", update.StringValue())

		assert.Nil(mt, mt.GetStartedEvent(), "no second command may follow the upsert")
	})

	mt.Run("generates a session id when none is supplied", func(mt *mtest.T) {
		repo := repositories.NewChatSessionRepository(mt.DB)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: sessionDoc("generated", "u1", bson.A{})},
		})

		_, err := repo.CreateOrGet(context.Background(), "", "u1")
		require.NoError(mt, err)

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		filtered, err := ev.Command.LookupErr("query", "session_id")
		require.NoError(mt, err)
		assert.NotEmpty(mt, filtered.StringValue())
	})
}
