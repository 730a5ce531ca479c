package usecase

import (
	"context"

	"tapify/internal/domain/entity"
)

// QR payload kinds accepted by the share surface.
const (
	QRKindURL   = "url"
	QRKindVCard = "vcard"
)

// NFCWriteInput reports the client environment alongside the write
// request; the browser owns the NFC primitive, the service records the
// outcome.
type NFCWriteInput struct {
	CardID       string
	Embedded     bool
	NFCSupported bool
}

// SharePayloadsOutput bundles every export form of a card.
type SharePayloadsOutput struct {
	ShareURL        string
	VCard           string
	VCardFilename   string
	OfflineFragment string
}

// OrderOutput carries the pre-filled WhatsApp order link.
type OrderOutput struct {
	OrderURL string
}

// ShareUsecase builds share and export payloads for a card.
type ShareUsecase interface {
	// Payloads returns the share URL, vCard record and offline fragment
	// for a card.
	Payloads(ctx context.Context, cardID string) (*SharePayloadsOutput, error)

	// QRCode renders either the share URL or the vCard as a PNG.
	QRCode(ctx context.Context, cardID, kind string) ([]byte, error)

	// WriteNFC validates the client environment and records an NFC_WRITE
	// activity. Embedded frames and NFC-less devices fail distinctly.
	WriteNFC(ctx context.Context, user entity.User, input *NFCWriteInput) (*SharePayloadsOutput, error)

	// Order builds the WhatsApp order URL and records ORDER_NFC.
	Order(ctx context.Context, user entity.User, cardID string) (*OrderOutput, error)

	// DecodeOffline decodes an offline fragment payload into a card.
	DecodeOffline(ctx context.Context, payload string) (*entity.BusinessCard, error)
}
