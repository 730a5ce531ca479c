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

// ShareHandler holds dependencies for share and export endpoints.
type ShareHandler struct {
	uc     usecase.ShareUsecase
	logger *slog.Logger
}

// NewShareHandler is the constructor for ShareHandler, injected by Fx.
func NewShareHandler(uc usecase.ShareUsecase, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{uc: uc, logger: logger}
}

type nfcWriteRequest struct {
	Embedded     bool `json:"embedded"`
	NFCSupported bool `json:"nfcSupported"`
}

type sharePayloadsResponse struct {
	ShareURL        string `json:"shareUrl"`
	VCard           string `json:"vcard"`
	VCardFilename   string `json:"vcardFilename"`
	OfflineFragment string `json:"offlineFragment"`
}

func newSharePayloadsResponse(out *usecase.SharePayloadsOutput) sharePayloadsResponse {
	return sharePayloadsResponse{
		ShareURL:        out.ShareURL,
		VCard:           out.VCard,
		VCardFilename:   out.VCardFilename,
		OfflineFragment: out.OfflineFragment,
	}
}

// Payloads returns the share URL, vCard record and offline fragment for
// a card.
func (h *ShareHandler) Payloads(c echo.Context) error {
	out, err := h.uc.Payloads(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSharePayloadsResponse(out))
}

// QRCode streams a PNG QR image of the share URL or vCard, selected by
// the kind query parameter.
func (h *ShareHandler) QRCode(c echo.Context) error {
	png, err := h.uc.QRCode(c.Request().Context(), c.Param("id"), c.QueryParam("kind"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// WriteNFC validates the reported client environment and records the
// NFC write.
func (h *ShareHandler) WriteNFC(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	var req nfcWriteRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid NFC input")
	}

	out, err := h.uc.WriteNFC(c.Request().Context(), user, &usecase.NFCWriteInput{
		CardID:       c.Param("id"),
		Embedded:     req.Embedded,
		NFCSupported: req.NFCSupported,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSharePayloadsResponse(out))
}

// Order returns the pre-filled WhatsApp link for ordering a physical
// card.
func (h *ShareHandler) Order(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Not signed in")
	}

	out, err := h.uc.Order(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"orderUrl": out.OrderURL})
}
