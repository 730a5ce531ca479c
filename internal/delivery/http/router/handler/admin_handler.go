package handler

import (
	"log/slog"
	"net/http"

	"tapify/internal/delivery/http/middleware"
	"tapify/internal/delivery/http/response"
	"tapify/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the admin management surface.
type AdminHandler struct {
	uc       usecase.AdminUsecase
	activity usecase.ActivityUsecase
	logger   *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, activity usecase.ActivityUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, activity: activity, logger: logger}
}

type onboardUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ListUsers returns every account, password hashes stripped.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users)
}

// ListCards returns every card in the system.
func (h *AdminHandler) ListCards(c echo.Context) error {
	cards, err := h.uc.ListCards(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cards)
}

// ListLogs returns the activity log newest-first.
func (h *AdminHandler) ListLogs(c echo.Context) error {
	logs, err := h.uc.ListLogs(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, logs)
}

// LogSummary returns entry counts grouped by action for the dashboard.
func (h *AdminHandler) LogSummary(c echo.Context) error {
	counts, err := h.activity.CountsByAction(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, counts)
}

// OnboardUser creates a pre-verified account on a member's behalf.
func (h *AdminHandler) OnboardUser(c echo.Context) error {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	var req onboardUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid onboarding input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.OnboardUser(c.Request().Context(), admin, &usecase.OnboardUserInput{Email: req.Email})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user.Sanitized())
}

// ProvisionCard creates the initial card for an onboarded user.
func (h *AdminHandler) ProvisionCard(c echo.Context) error {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	card, err := h.uc.ProvisionCard(c.Request().Context(), admin, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, card)
}

// DeleteCard removes a card.
func (h *AdminHandler) DeleteCard(c echo.Context) error {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	if err := h.uc.DeleteCard(c.Request().Context(), admin, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Card deleted"})
}
