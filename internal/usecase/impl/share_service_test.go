package impl

import (
	"context"
	"strings"
	"testing"

	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareService_Payloads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "jane.doe@tapify.co", "pw", false)
	card := env.seedCard(t, user)

	out, err := env.share.Payloads(ctx, card.ID)
	require.NoError(t, err)

	assert.Equal(t, "https://cards.tapify.co?card="+card.ID, out.ShareURL)
	assert.True(t, strings.HasPrefix(out.VCard, "BEGIN:VCARD"))
	assert.Contains(t, out.VCard, "FN:Jane Doe")
	assert.Equal(t, "Jane Doe.vcf", out.VCardFilename)

	require.True(t, strings.HasPrefix(out.OfflineFragment, "#off="))
	decoded, err := env.share.DecodeOffline(ctx, strings.TrimPrefix(out.OfflineFragment, "#off="))
	require.NoError(t, err)
	assert.Equal(t, card.ID, decoded.ID)
	assert.Equal(t, "Jane Doe", decoded.Name)
}

func TestShareService_QRCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "jane.doe@tapify.co", "pw", false)
	card := env.seedCard(t, user)

	url, err := env.share.QRCode(ctx, card.ID, usecase.QRKindURL)
	require.NoError(t, err)
	assert.Equal(t, "png:https://cards.tapify.co?card="+card.ID, string(url))

	// An empty kind defaults to the share URL.
	fallback, err := env.share.QRCode(ctx, card.ID, "")
	require.NoError(t, err)
	assert.Equal(t, url, fallback)

	vcard, err := env.share.QRCode(ctx, card.ID, usecase.QRKindVCard)
	require.NoError(t, err)
	assert.Contains(t, string(vcard), "BEGIN:VCARD")

	_, err = env.share.QRCode(ctx, card.ID, "svg")
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestShareService_WriteNFC(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "jane.doe@tapify.co", "pw", false)
	card := env.seedCard(t, user)

	out, err := env.share.WriteNFC(ctx, user, &usecase.NFCWriteInput{
		CardID:       card.ID,
		NFCSupported: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cards.tapify.co?card="+card.ID, out.ShareURL)

	entry := env.lastLog(t)
	assert.Equal(t, entity.ActionNFCWrite, entry.Action)
	assert.Equal(t, "NFC tag written for Jane Doe", entry.Details)
}

func TestShareService_WriteNFC_EnvironmentChecks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "jane.doe@tapify.co", "pw", false)
	card := env.seedCard(t, user)

	// Embedded frames cannot reach the NFC API regardless of support.
	_, err := env.share.WriteNFC(ctx, user, &usecase.NFCWriteInput{
		CardID:       card.ID,
		Embedded:     true,
		NFCSupported: true,
	})
	require.ErrorIs(t, err, domainerrors.ErrEnvironmentRestricted)

	_, err = env.share.WriteNFC(ctx, user, &usecase.NFCWriteInput{
		CardID:       card.ID,
		NFCSupported: false,
	})
	require.ErrorIs(t, err, domainerrors.ErrCapabilityUnavailable)

	intruder := env.seedUser(t, "intruder@tapify.co", "pw", false)
	_, err = env.share.WriteNFC(ctx, intruder, &usecase.NFCWriteInput{
		CardID:       card.ID,
		NFCSupported: true,
	})
	require.ErrorIs(t, err, domainerrors.ErrCardOwnershipViolation)

	logs, err := env.activity.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs, "rejected writes leave no audit entry")
}

func TestShareService_Order(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.seedUser(t, "jane.doe@tapify.co", "pw", false)
	card := env.seedCard(t, user)

	out, err := env.share.Order(ctx, user, card.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.OrderURL, "https://wa.me/96879398307?text="))
	assert.Contains(t, out.OrderURL, "Jane%20Doe")
	assert.NotContains(t, out.OrderURL, "+", "spaces must be percent-encoded, not plus-encoded")

	entry := env.lastLog(t)
	assert.Equal(t, entity.ActionOrderNFC, entry.Action)
	assert.Equal(t, "Physical card order initiated for Jane Doe", entry.Details)
}

func TestShareService_Order_ForeignCardRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@tapify.co", "pw", false)
	card := env.seedCard(t, owner)
	intruder := env.seedUser(t, "intruder@tapify.co", "pw", false)

	_, err := env.share.Order(ctx, intruder, card.ID)

	require.ErrorIs(t, err, domainerrors.ErrCardOwnershipViolation)
}

func TestShareService_DecodeOffline_InvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.share.DecodeOffline(context.Background(), "%%not-base64%%")

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
