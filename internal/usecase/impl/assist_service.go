package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "tapify/internal/delivery/context"
	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/repository"
	"tapify/internal/domain/service"
	"tapify/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// assistService implements the AssistUsecase interface.
type assistService struct {
	store     repository.Store
	assistant service.CardAssistant
	activity  usecase.ActivityUsecase
	logger    *slog.Logger
}

// AssistServiceParams holds dependencies for AssistService, injected by Fx.
type AssistServiceParams struct {
	fx.In

	Store     repository.Store
	Assistant service.CardAssistant
	Activity  usecase.ActivityUsecase
	Logger    *slog.Logger
}

// NewAssistService is the constructor for assistService.
func NewAssistService(params AssistServiceParams) usecase.AssistUsecase {
	return &assistService{
		store:     params.Store,
		assistant: params.Assistant,
		activity:  params.Activity,
		logger:    params.Logger,
	}
}

func (srv *assistService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// TranslateCard translates the card's text fields, persists them and
// records the action. The translation replaces only the five text
// fields; layout and assets stay untouched.
func (srv *assistService) TranslateCard(ctx context.Context, user entity.User, input *usecase.TranslateCardInput) (*entity.BusinessCard, error) {
	if input.Target != entity.LanguageEnglish && input.Target != entity.LanguageNepali {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown target language")
	}

	cards, err := srv.store.Cards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cards")
	}

	idx := -1
	for i := range cards {
		if cards[i].ID == input.CardID {
			idx = i

			break
		}
	}
	if idx < 0 {
		return nil, errors.Wrap(domainerrors.ErrCardNotFound, "translation failed")
	}
	if cards[idx].UserID != user.ID {
		return nil, errors.Wrap(domainerrors.ErrCardOwnershipViolation, "translation failed")
	}

	fields, err := srv.assistant.TranslateCard(ctx, &cards[idx], input.Target)
	if err != nil {
		return nil, err
	}

	cards[idx].Name = fields.Name
	cards[idx].Title = fields.Title
	cards[idx].Company = fields.Company
	cards[idx].Address = fields.Address
	cards[idx].Bio = fields.Bio
	cards[idx].Language = input.Target

	if err := srv.store.PutCards(ctx, cards); err != nil {
		return nil, errors.Wrap(err, "failed to persist translated card")
	}

	if _, err := srv.activity.Record(ctx, user.ID, user.Email, entity.ActionAITranslate,
		fmt.Sprintf("Profile translated to %s", languageName(input.Target))); err != nil {
		srv.log(ctx).Warn("Failed to record translation", slog.Any("error", err))
	}

	return &cards[idx], nil
}

// EditImage applies a prompt to an image and records the action.
func (srv *assistService) EditImage(ctx context.Context, user entity.User, input *usecase.EditImageInput) (string, error) {
	result, err := srv.assistant.EditImage(ctx, input.ImageDataURI, input.Prompt)
	if err != nil {
		return "", err
	}

	if _, err := srv.activity.Record(ctx, user.ID, user.Email, entity.ActionAIImageEdit,
		"AI Image modification applied"); err != nil {
		srv.log(ctx).Warn("Failed to record image edit", slog.Any("error", err))
	}

	return result, nil
}

func languageName(lang entity.CardLanguage) string {
	if lang == entity.LanguageNepali {
		return "Nepali"
	}

	return "English"
}
