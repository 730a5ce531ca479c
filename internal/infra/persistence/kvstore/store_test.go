package kvstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"tapify/internal/domain/entity"
	"tapify/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*collectionStore, KV) {
	kv := NewMemoryKV()
	store := &collectionStore{
		kv:     kv,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    nowUnixMilli,
	}

	return store, kv
}

func TestStore_UsersRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	users, err := store.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	seeded := []entity.User{
		{ID: "u_1", Email: "admin@tapify.co", IsAdmin: true, IsVerified: true},
		{ID: "u_2", Email: "member1@tapify.co", IsVerified: true},
	}
	require.NoError(t, store.PutUsers(ctx, seeded))

	users, err = store.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin@tapify.co", users[0].Email)
	assert.True(t, users[0].IsAdmin)
}

func TestStore_MalformedPayloadReadsEmpty(t *testing.T) {
	store, kv := newTestStore()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, repository.KeyCards, []byte("{not json")))

	cards, err := store.Cards(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestStore_AppendLogPrependsNewestFirst(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	first, err := store.AppendLog(ctx, entity.ActivityLog{
		UserID:    "u_1",
		UserEmail: "member1@tapify.co",
		Action:    entity.ActionLogin,
		Details:   "User logged in",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.NotZero(t, first.Timestamp)

	second, err := store.AppendLog(ctx, entity.ActivityLog{
		UserID:    "u_1",
		UserEmail: "member1@tapify.co",
		Action:    entity.ActionSave,
		Details:   "Card saved",
	})
	require.NoError(t, err)

	logs, err := store.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, second.ID, logs[0].ID)
	assert.Equal(t, first.ID, logs[1].ID)
}

func TestStore_AppendLogCapsAtMaxEntries(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	seeded := make([]entity.ActivityLog, repository.MaxLogEntries)
	for i := range seeded {
		seeded[i] = entity.ActivityLog{
			ID:        fmt.Sprintf("log_%d", i),
			UserID:    "u_1",
			Action:    entity.ActionSave,
			Timestamp: int64(i),
		}
	}
	require.NoError(t, store.PutLogs(ctx, seeded))

	newest, err := store.AppendLog(ctx, entity.ActivityLog{
		UserID: "u_1",
		Action: entity.ActionNFCWrite,
	})
	require.NoError(t, err)

	logs, err := store.Logs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, repository.MaxLogEntries)
	assert.Equal(t, newest.ID, logs[0].ID)

	// The oldest seeded entry falls off the end.
	assert.Equal(t, "log_0", logs[1].ID)
	assert.Equal(t, fmt.Sprintf("log_%d", repository.MaxLogEntries-2), logs[repository.MaxLogEntries-1].ID)
}

func TestStore_SessionLifecycle(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	session, err := store.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	user := &entity.User{ID: "u_1", Email: "member1@tapify.co", IsVerified: true}
	require.NoError(t, store.SetSession(ctx, user))

	session, err = store.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "member1@tapify.co", session.Email)

	require.NoError(t, store.SetSession(ctx, nil))

	session, err = store.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStore_WalletRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	entries := []entity.WalletEntry{
		{CardID: "card_1", Card: entity.BusinessCard{ID: "card_1", Name: "Jane Doe"}, SavedAt: 1700000000000},
	}
	require.NoError(t, store.PutWallet(ctx, entries))

	got, err := store.Wallet(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Card.Name)
}

func TestMemoryKV_CopiesPayloads(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	original := []byte(`{"a":1}`)
	require.NoError(t, kv.Set(ctx, "k", original))

	original[0] = 'X'

	stored, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), stored)

	stored[0] = 'Y'

	again, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), again)
}
