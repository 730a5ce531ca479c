package handler

import (
	"log/slog"
	"net/http"

	"tapify/internal/delivery/http/response"
	"tapify/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WalletHandler holds dependencies for the saved-cards wallet. Wallet
// endpoints are public: viewers of a shared card may be anonymous.
type WalletHandler struct {
	uc     usecase.WalletUsecase
	logger *slog.Logger
}

// NewWalletHandler is the constructor for WalletHandler, injected by Fx.
func NewWalletHandler(uc usecase.WalletUsecase, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{uc: uc, logger: logger}
}

type walletSaveRequest struct {
	CardID string `json:"cardId" validate:"required"`
}

// Save snapshots a card into the wallet, idempotent on card id.
func (h *WalletHandler) Save(c echo.Context) error {
	var req walletSaveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid wallet input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	entry, err := h.uc.Save(c.Request().Context(), req.CardID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, entry)
}

// List returns all saved snapshots.
func (h *WalletHandler) List(c echo.Context) error {
	entries, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries)
}
