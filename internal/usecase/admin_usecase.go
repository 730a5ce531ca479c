package usecase

import (
	"context"

	"tapify/internal/domain/entity"
)

// OnboardUserInput creates an account on a member's behalf.
type OnboardUserInput struct {
	Email string
}

// AdminUsecase is the management surface behind the admin role.
type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	ListCards(ctx context.Context) ([]entity.BusinessCard, error)
	ListLogs(ctx context.Context) ([]entity.ActivityLog, error)

	// OnboardUser creates a pre-verified account without a password; the
	// member sets one later through password recovery.
	OnboardUser(ctx context.Context, admin entity.User, input *OnboardUserInput) (*entity.User, error)

	// ProvisionCard creates the initial card for an onboarded user.
	ProvisionCard(ctx context.Context, admin entity.User, userID string) (*entity.BusinessCard, error)

	// DeleteCard removes a card and records the deletion.
	DeleteCard(ctx context.Context, admin entity.User, cardID string) error
}
