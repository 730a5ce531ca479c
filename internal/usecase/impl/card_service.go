package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "tapify/internal/delivery/context"
	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/repository"
	"tapify/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cardService implements the CardUsecase interface.
type cardService struct {
	store    repository.Store
	activity usecase.ActivityUsecase
	logger   *slog.Logger
}

// CardServiceParams holds dependencies for CardService, injected by Fx.
type CardServiceParams struct {
	fx.In

	Store    repository.Store
	Activity usecase.ActivityUsecase
	Logger   *slog.Logger
}

// NewCardService is the constructor for cardService.
func NewCardService(params CardServiceParams) usecase.CardUsecase {
	return &cardService{
		store:    params.Store,
		activity: params.Activity,
		logger:   params.Logger,
	}
}

func (srv *cardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// EnsureCard returns the user's card, creating the default card if none
// exists. The check-then-create sequence is not atomic; the single
// session per account keeps that acceptable.
func (srv *cardService) EnsureCard(ctx context.Context, user entity.User) (*entity.BusinessCard, error) {
	cards, err := srv.store.Cards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cards")
	}

	for i := range cards {
		if cards[i].UserID == user.ID {
			return &cards[i], nil
		}
	}

	card := entity.NewDefaultCard(user)
	cards = append(cards, card)
	if err := srv.store.PutCards(ctx, cards); err != nil {
		return nil, errors.Wrap(err, "failed to persist provisioned card")
	}

	srv.log(ctx).Info("Provisioned default card",
		slog.String("userID", user.ID),
		slog.String("cardID", card.ID),
	)

	return &card, nil
}

// GetByID returns a card for the public profile view.
func (srv *cardService) GetByID(ctx context.Context, cardID string) (*entity.BusinessCard, error) {
	cards, err := srv.store.Cards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cards")
	}

	for i := range cards {
		if cards[i].ID == cardID {
			return &cards[i], nil
		}
	}

	return nil, errors.Wrap(domainerrors.ErrCardNotFound, "card lookup failed")
}

// Update replaces the user's card in place and records the save.
func (srv *cardService) Update(ctx context.Context, user entity.User, input *usecase.UpdateCardInput) (*entity.BusinessCard, error) {
	cards, err := srv.store.Cards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cards")
	}

	idx := -1
	for i := range cards {
		if cards[i].ID == input.Card.ID {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrCardNotFound, "card update failed")
	}
	if cards[idx].UserID != user.ID {
		srv.log(ctx).Warn("Rejected card update for foreign card",
			slog.String("userID", user.ID),
			slog.String("cardID", input.Card.ID),
		)

		return nil, errors.Wrap(domainerrors.ErrCardOwnershipViolation, "card update failed")
	}

	// Identity fields never change on update.
	updated := input.Card
	updated.UserID = cards[idx].UserID
	updated.CreatedAt = cards[idx].CreatedAt

	cards[idx] = updated
	if err := srv.store.PutCards(ctx, cards); err != nil {
		return nil, errors.Wrap(err, "failed to persist card update")
	}

	if _, err := srv.activity.Record(ctx, user.ID, user.Email, entity.ActionSave,
		fmt.Sprintf("Card design updated for %s", updated.Name)); err != nil {
		srv.log(ctx).Warn("Failed to record card save", slog.Any("error", err))
	}

	return &updated, nil
}
