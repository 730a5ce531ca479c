package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tapify/internal/delivery/context"
	"tapify/internal/domain/entity"
	"tapify/internal/domain/repository"
	"tapify/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// walletService implements the WalletUsecase interface.
type walletService struct {
	store  repository.Store
	cards  usecase.CardUsecase
	logger *slog.Logger
}

// WalletServiceParams holds dependencies for WalletService, injected by Fx.
type WalletServiceParams struct {
	fx.In

	Store  repository.Store
	Cards  usecase.CardUsecase
	Logger *slog.Logger
}

// NewWalletService is the constructor for walletService.
func NewWalletService(params WalletServiceParams) usecase.WalletUsecase {
	return &walletService{
		store:  params.Store,
		cards:  params.Cards,
		logger: params.Logger,
	}
}

func (srv *walletService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Save snapshots the card into the wallet. Saving the same card again
// returns the existing snapshot unchanged.
func (srv *walletService) Save(ctx context.Context, cardID string) (*entity.WalletEntry, error) {
	entries, err := srv.store.Wallet(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read wallet")
	}

	for i := range entries {
		if entries[i].CardID == cardID {
			return &entries[i], nil
		}
	}

	card, err := srv.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	entry := entity.WalletEntry{
		CardID:  card.ID,
		Card:    *card,
		SavedAt: time.Now().UnixMilli(),
	}
	entries = append(entries, entry)
	if err := srv.store.PutWallet(ctx, entries); err != nil {
		return nil, errors.Wrap(err, "failed to persist wallet entry")
	}

	srv.log(ctx).Info("Card saved to wallet", slog.String("cardID", card.ID))

	return &entry, nil
}

// List returns all saved snapshots.
func (srv *walletService) List(ctx context.Context) ([]entity.WalletEntry, error) {
	entries, err := srv.store.Wallet(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read wallet")
	}

	return entries, nil
}
