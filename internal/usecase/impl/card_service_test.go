package impl

import (
	"context"
	"testing"

	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardService_EnsureCard_ProvisionsDefaults(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "jane.doe@tapify.co", "pw", false)

	card, err := env.cards.EnsureCard(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, user.ID, card.UserID)
	assert.Equal(t, "Jane Doe", card.Name)
	assert.Equal(t, "jane.doe@tapify.co", card.Email)
	assert.Equal(t, entity.TemplateModern, card.Template)
	assert.Equal(t, entity.ThemeLight, card.Theme)
	assert.Equal(t, entity.OrientationLandscape, card.Orientation)
	assert.Equal(t, entity.DefaultThemeColor, card.ThemeColor)
	assert.Equal(t, entity.DefaultProfileImage, card.ProfileImage)
	assert.NotZero(t, card.CreatedAt)
}

func TestCardService_EnsureCard_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "member1@tapify.co", "pw", false)

	first, err := env.cards.EnsureCard(ctx, user)
	require.NoError(t, err)
	second, err := env.cards.EnsureCard(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	cards, err := env.store.Cards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestCardService_GetByID_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.cards.GetByID(context.Background(), "card_missing")

	require.ErrorIs(t, err, domainerrors.ErrCardNotFound)
}

func TestCardService_Update_RecordsSave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "jane.doe@tapify.co", "pw", false)
	card := env.seedCard(t, user)

	modified := *card
	modified.Name = "Jane D. Doe"
	modified.Title = "Staff Engineer"
	// A client cannot reassign ownership or creation time through an
	// update payload.
	modified.UserID = "u_hijacked"
	modified.CreatedAt = 1

	updated, err := env.cards.Update(ctx, user, &usecase.UpdateCardInput{Card: modified})
	require.NoError(t, err)

	assert.Equal(t, "Jane D. Doe", updated.Name)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.Equal(t, user.ID, updated.UserID)
	assert.Equal(t, card.CreatedAt, updated.CreatedAt)

	entry := env.lastLog(t)
	assert.Equal(t, entity.ActionSave, entry.Action)
	assert.Equal(t, "Card design updated for Jane D. Doe", entry.Details)
	assert.Equal(t, user.ID, entry.UserID)
}

func TestCardService_Update_ForeignCardRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@tapify.co", "pw", false)
	card := env.seedCard(t, owner)
	intruder := env.seedUser(t, "intruder@tapify.co", "pw", false)

	modified := *card
	modified.Name = "Hijacked"

	_, err := env.cards.Update(ctx, intruder, &usecase.UpdateCardInput{Card: modified})
	require.ErrorIs(t, err, domainerrors.ErrCardOwnershipViolation)

	stored, err := env.cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.Name, stored.Name)
}
