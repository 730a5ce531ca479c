package impl

import (
	"context"
	"strings"
	"testing"

	"tapify/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_Record_StampsAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	stored, err := env.activity.Record(ctx, "u_1", "jane.doe@tapify.co", entity.ActionSave, "Card design updated for Jane Doe")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.ID, "log_"))
	assert.NotZero(t, stored.Timestamp)

	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, stored.ID, event.LogID)
	assert.Equal(t, "u_1", event.UserID)
	assert.Equal(t, string(entity.ActionSave), event.Action)
	assert.Equal(t, stored.Timestamp, event.Timestamp)
}

func TestActivityService_Record_PublishFailureIsSwallowed(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.err = assert.AnError

	stored, err := env.activity.Record(context.Background(), "u_1", "jane.doe@tapify.co", entity.ActionLogin, "User logged in")

	require.NoError(t, err, "the audit trail already holds the entry")
	assert.NotEmpty(t, stored.ID)

	logs, err := env.activity.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestActivityService_List_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.activity.Record(ctx, "u_1", "a@tapify.co", entity.ActionLogin, "first")
	require.NoError(t, err)
	_, err = env.activity.Record(ctx, "u_1", "a@tapify.co", entity.ActionSave, "second")
	require.NoError(t, err)

	logs, err := env.activity.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Details)
	assert.Equal(t, "first", logs[1].Details)
}

func TestActivityService_CountsByAction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for range 3 {
		_, err := env.activity.Record(ctx, "u_1", "a@tapify.co", entity.ActionSave, "save")
		require.NoError(t, err)
	}
	_, err := env.activity.Record(ctx, "u_1", "a@tapify.co", entity.ActionNFCWrite, "nfc")
	require.NoError(t, err)

	counts, err := env.activity.CountsByAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[entity.ActionSave])
	assert.Equal(t, 1, counts[entity.ActionNFCWrite])
	assert.Zero(t, counts[entity.ActionOrderNFC])
}
