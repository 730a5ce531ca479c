package ai

import (
	"context"
	"log/slog"

	"tapify/config"
	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/service"

	"go.uber.org/fx"
)

// disabledAssistant rejects every request. Used when no API key is set
// so the rest of the card flow keeps working without the assistant.
type disabledAssistant struct{}

func (disabledAssistant) TranslateCard(ctx context.Context, card *entity.BusinessCard, target entity.CardLanguage) (*service.TranslatedFields, error) {
	return nil, domainerrors.ErrAssistantUnavailable
}

func (disabledAssistant) EditImage(ctx context.Context, imageDataURI, prompt string) (string, error) {
	return "", domainerrors.ErrAssistantUnavailable
}

// AssistantParams holds dependencies for the CardAssistant, injected by Fx
type AssistantParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewCardAssistant creates a CardAssistant based on configuration.
func NewCardAssistant(params AssistantParams) service.CardAssistant {
	cfg := params.Config.AI
	logger := params.Logger

	if cfg == nil || cfg.APIKey == "" {
		logger.Info("AI not configured, assistant features disabled")

		return disabledAssistant{}
	}

	logger.Info("Using Gemini card assistant",
		slog.String("text_model", cfg.TextModel),
		slog.String("image_model", cfg.ImageModel),
	)

	return NewGeminiAssistant(cfg.APIKey, cfg.TextModel, cfg.ImageModel, logger)
}

// Module provides the AI FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewCardAssistant),
)
