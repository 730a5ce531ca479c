package usecase

import (
	"context"

	"tapify/internal/domain/entity"
)

// WalletUsecase stores card snapshots saved by viewers for offline
// reference. Viewers may be anonymous.
type WalletUsecase interface {
	// Save snapshots the card into the wallet, idempotent on card id.
	Save(ctx context.Context, cardID string) (*entity.WalletEntry, error)

	// List returns all saved snapshots.
	List(ctx context.Context) ([]entity.WalletEntry, error)
}
