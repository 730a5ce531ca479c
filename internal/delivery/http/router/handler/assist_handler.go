package handler

import (
	"log/slog"
	"net/http"

	"tapify/internal/delivery/http/middleware"
	"tapify/internal/delivery/http/response"
	"tapify/internal/domain/entity"
	"tapify/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AssistHandler holds dependencies for the generative-AI endpoints.
type AssistHandler struct {
	uc     usecase.AssistUsecase
	logger *slog.Logger
}

// NewAssistHandler is the constructor for AssistHandler, injected by Fx.
func NewAssistHandler(uc usecase.AssistUsecase, logger *slog.Logger) *AssistHandler {
	return &AssistHandler{uc: uc, logger: logger}
}

type translateCardRequest struct {
	CardID string `json:"cardId" validate:"required"`
	Target string `json:"target" validate:"required"`
}

type editImageRequest struct {
	ImageDataURI string `json:"imageDataUri" validate:"required"`
	Prompt       string `json:"prompt" validate:"required"`
}

// TranslateCard translates the card's text fields into the target
// language and persists the result.
func (h *AssistHandler) TranslateCard(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	var req translateCardRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid translation input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	card, err := h.uc.TranslateCard(c.Request().Context(), user, &usecase.TranslateCardInput{
		CardID: req.CardID,
		Target: entity.CardLanguage(req.Target),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card)
}

// EditImage applies a free-text instruction to an image and returns the
// modified image as a data URI.
func (h *AssistHandler) EditImage(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	var req editImageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid image edit input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.uc.EditImage(c.Request().Context(), user, &usecase.EditImageInput{
		ImageDataURI: req.ImageDataURI,
		Prompt:       req.Prompt,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"image": result})
}
