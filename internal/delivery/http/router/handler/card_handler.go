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

// CardHandler holds dependencies for card editing and public viewing.
type CardHandler struct {
	uc     usecase.CardUsecase
	share  usecase.ShareUsecase
	logger *slog.Logger
}

// NewCardHandler is the constructor for CardHandler, injected by Fx.
func NewCardHandler(uc usecase.CardUsecase, share usecase.ShareUsecase, logger *slog.Logger) *CardHandler {
	return &CardHandler{uc: uc, share: share, logger: logger}
}

// GetOwn returns the authenticated user's card, provisioning the
// default card on first access.
func (h *CardHandler) GetOwn(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	card, err := h.uc.EnsureCard(c.Request().Context(), user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card)
}

// Update replaces the authenticated user's card with the submitted
// design.
func (h *CardHandler) Update(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	var card entity.BusinessCard
	if err := c.Bind(&card); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid card input")
	}

	updated, err := h.uc.Update(c.Request().Context(), user, &usecase.UpdateCardInput{Card: card})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, updated)
}

// GetPublic returns a card by id for the public profile view. No
// authentication is required; anyone holding the link can view.
func (h *CardHandler) GetPublic(c echo.Context) error {
	card, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card)
}

// DecodeOffline renders a card carried entirely inside an offline
// fragment payload, without any store lookup.
func (h *CardHandler) DecodeOffline(c echo.Context) error {
	card, err := h.share.DecodeOffline(c.Request().Context(), c.Param("payload"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card)
}
