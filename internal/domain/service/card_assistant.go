package service

import (
	"context"

	"tapify/internal/domain/entity"
)

// TranslatedFields carries the card text fields returned by a
// translation request.
type TranslatedFields struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Address string `json:"address"`
	Bio     string `json:"bio"`
}

// CardAssistant defines the generative-AI operations offered to card
// owners. Implementations map provider failures to ExternalServiceError.
type CardAssistant interface {
	// TranslateCard translates the card's text fields into the target
	// language, keeping a professional register.
	TranslateCard(ctx context.Context, card *entity.BusinessCard, target entity.CardLanguage) (*TranslatedFields, error)

	// EditImage applies a free-text editing instruction to an image and
	// returns the result as a data URI.
	EditImage(ctx context.Context, imageDataURI, prompt string) (string, error)
}
