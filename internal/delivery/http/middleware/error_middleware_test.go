package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "tapify/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(logger).HandleHTTPError
	e.GET("/boom", func(_ echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestHandleHTTPError_AppError(t *testing.T) {
	rec, body := serveError(t, domainerrors.ErrCardNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "CARD_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Card not found", body.Error.Message)
	assert.Empty(t, body.Error.Details)
	assert.NotEmpty(t, body.Meta.RequestID)
}

func TestHandleHTTPError_WrappedAppError(t *testing.T) {
	wrapped := errors.Wrap(domainerrors.ErrFlowNotFound, "submit otp")
	rec, body := serveError(t, wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "FLOW_NOT_FOUND", body.Error.Code)
}

func TestHandleHTTPError_DetailsSurfaceOnBadRequest(t *testing.T) {
	rec, body := serveError(t, domainerrors.ErrValidationFailed.WithDetails("code must be 6 digits"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, "code must be 6 digits", body.Error.Details)
}

func TestHandleHTTPError_DetailsWithheldOnUnauthorized(t *testing.T) {
	rec, body := serveError(t, domainerrors.ErrInvalidCredentials.WithDetails("bcrypt mismatch"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, body.Error.Details)
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	rec, body := serveError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
}

func TestHandleHTTPError_UnknownErrorIsGeneric(t *testing.T) {
	rec, body := serveError(t, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
