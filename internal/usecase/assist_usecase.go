package usecase

import (
	"context"

	"tapify/internal/domain/entity"
)

// TranslateCardInput requests a translation of the user's card fields.
type TranslateCardInput struct {
	CardID string
	Target entity.CardLanguage
}

// EditImageInput requests an AI edit of an image asset.
type EditImageInput struct {
	ImageDataURI string
	Prompt       string
}

// AssistUsecase exposes the generative-AI features of the editor.
type AssistUsecase interface {
	// TranslateCard translates the card's text fields, persists them and
	// records AI_TRANSLATE.
	TranslateCard(ctx context.Context, user entity.User, input *TranslateCardInput) (*entity.BusinessCard, error)

	// EditImage applies a prompt to an image and records AI_IMAGE_EDIT.
	// The result is returned as a data URI; the editor decides where to
	// place it.
	EditImage(ctx context.Context, user entity.User, input *EditImageInput) (string, error)
}
