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

// Card defaults applied when an admin provisions on a member's behalf.
const (
	onboardedCardTitle = "New Member"
	onboardedCardBio   = "Onboarded by Administrator"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	store    repository.Store
	activity usecase.ActivityUsecase
	logger   *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	Store    repository.Store
	Activity usecase.ActivityUsecase
	Logger   *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		store:    params.Store,
		activity: params.Activity,
		logger:   params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns all accounts with password hashes stripped.
func (srv *adminService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := srv.store.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}

	sanitized := make([]entity.User, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitized()
	}

	return sanitized, nil
}

func (srv *adminService) ListCards(ctx context.Context) ([]entity.BusinessCard, error) {
	cards, err := srv.store.Cards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cards")
	}

	return cards, nil
}

func (srv *adminService) ListLogs(ctx context.Context) ([]entity.ActivityLog, error) {
	return srv.activity.List(ctx)
}

// OnboardUser creates a pre-verified account with no password. The
// member sets one later through password recovery.
func (srv *adminService) OnboardUser(ctx context.Context, admin entity.User, input *usecase.OnboardUserInput) (*entity.User, error) {
	if input.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "email is required")
	}

	users, err := srv.store.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}
	for _, u := range users {
		if u.Email == input.Email {
			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "onboarding failed")
		}
	}

	user := entity.User{
		ID:         entity.NewUserID(),
		Email:      input.Email,
		IsAdmin:    false,
		IsVerified: true,
	}
	users = append(users, user)
	if err := srv.store.PutUsers(ctx, users); err != nil {
		return nil, errors.Wrap(err, "failed to persist onboarded user")
	}

	if _, err := srv.activity.Record(ctx, admin.ID, admin.Email, entity.ActionLogin,
		fmt.Sprintf("Admin manually onboarded user: %s", input.Email)); err != nil {
		srv.log(ctx).Warn("Failed to record onboarding", slog.Any("error", err))
	}

	srv.log(ctx).Info("User onboarded by admin",
		slog.String("adminID", admin.ID),
		slog.String("userID", user.ID),
	)

	return &user, nil
}

// ProvisionCard creates the initial card for an onboarded user. An
// existing card is returned unchanged.
func (srv *adminService) ProvisionCard(ctx context.Context, admin entity.User, userID string) (*entity.BusinessCard, error) {
	users, err := srv.store.Users(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read users")
	}

	var user *entity.User
	for i := range users {
		if users[i].ID == userID {
			user = &users[i]

			break
		}
	}
	if user == nil {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "card provisioning failed")
	}

	cards, err := srv.store.Cards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cards")
	}
	for i := range cards {
		if cards[i].UserID == userID {
			return &cards[i], nil
		}
	}

	card := entity.NewDefaultCard(*user)
	card.Title = onboardedCardTitle
	card.Bio = onboardedCardBio

	cards = append(cards, card)
	if err := srv.store.PutCards(ctx, cards); err != nil {
		return nil, errors.Wrap(err, "failed to persist provisioned card")
	}

	if _, err := srv.activity.Record(ctx, admin.ID, admin.Email, entity.ActionSave,
		fmt.Sprintf("Admin provisioned initial card for %s", user.Email)); err != nil {
		srv.log(ctx).Warn("Failed to record provisioning", slog.Any("error", err))
	}

	return &card, nil
}

// DeleteCard removes a card and records the deletion.
func (srv *adminService) DeleteCard(ctx context.Context, admin entity.User, cardID string) error {
	cards, err := srv.store.Cards(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read cards")
	}

	remaining := make([]entity.BusinessCard, 0, len(cards))
	found := false
	for _, card := range cards {
		if card.ID == cardID {
			found = true

			continue
		}
		remaining = append(remaining, card)
	}
	if !found {
		return errors.Wrap(domainerrors.ErrCardNotFound, "card deletion failed")
	}

	if err := srv.store.PutCards(ctx, remaining); err != nil {
		return errors.Wrap(err, "failed to persist card deletion")
	}

	if _, err := srv.activity.Record(ctx, admin.ID, admin.Email, entity.ActionSave,
		fmt.Sprintf("Admin deleted card ID: %s", cardID)); err != nil {
		srv.log(ctx).Warn("Failed to record card deletion", slog.Any("error", err))
	}

	return nil
}
