package usecase

import (
	"context"

	"tapify/internal/domain/entity"
)

// UpdateCardInput carries a full card replacement from the editor.
type UpdateCardInput struct {
	Card entity.BusinessCard
}

// CardUsecase manages the one-card-per-user editing surface.
type CardUsecase interface {
	// EnsureCard returns the user's card, provisioning the default card
	// first if none exists. Repeated calls never create a second card.
	EnsureCard(ctx context.Context, user entity.User) (*entity.BusinessCard, error)

	// GetByID returns a card by id for the public profile view.
	GetByID(ctx context.Context, cardID string) (*entity.BusinessCard, error)

	// Update replaces the user's card and records a SAVE activity. The
	// card must belong to the user; id and userId are never reassigned.
	Update(ctx context.Context, user entity.User, input *UpdateCardInput) (*entity.BusinessCard, error)
}
