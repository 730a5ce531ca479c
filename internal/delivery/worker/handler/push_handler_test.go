package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tapify/config"
	deliverycontext "tapify/internal/delivery/context"
	"tapify/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPushHandler() *PushHandler {
	return NewPushHandler(PushHandlerParams{
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func pushBody(t *testing.T, event service.ActivityEvent, attributes map[string]string) []byte {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = "m1"
	msg.Subscription = "projects/tapify-dev/subscriptions/activity-events"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func servePush(h *PushHandler, body []byte) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/push", h.HandlePush)
	e.GET("/stats", h.Stats)

	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestHandlePush_ArchivesEvent(t *testing.T) {
	h := newTestPushHandler()

	event := service.ActivityEvent{
		LogID:     "log_1",
		UserID:    "u_1",
		Action:    "SAVE",
		Details:   "Card design updated for Jane Doe",
		Timestamp: 1700000000000,
	}
	rec := servePush(h, pushBody(t, event, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = servePush(h, pushBody(t, service.ActivityEvent{LogID: "log_2", Action: "SAVE"}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	e := echo.New()
	e.GET("/stats", h.Stats)
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	statsRec := httptest.NewRecorder()
	e.ServeHTTP(statsRec, req)

	var stats struct {
		Received int            `json:"received"`
		ByAction map[string]int `json:"byAction"`
	}
	require.NoError(t, json.Unmarshal(statsRec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Received)
	assert.Equal(t, 2, stats.ByAction["SAVE"])
}

func TestHandlePush_RejectsBadPayloads(t *testing.T) {
	h := newTestPushHandler()

	var badData PubSubMessage
	badData.Message.Data = "not-base64!"
	badDataBody, err := json.Marshal(badData)
	require.NoError(t, err)

	var badEvent PubSubMessage
	badEvent.Message.Data = base64.StdEncoding.EncodeToString([]byte("{"))
	badEventBody, err := json.Marshal(badEvent)
	require.NoError(t, err)

	cases := []struct {
		name string
		body []byte
	}{
		{name: "not json", body: []byte("not json")},
		{name: "data not base64", body: badDataBody},
		{name: "event not json", body: badEventBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := servePush(h, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	e := echo.New()
	e.GET("/stats", h.Stats)
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var stats struct {
		Received int `json:"received"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Zero(t, stats.Received)
}

func TestExtractRequestID_Precedence(t *testing.T) {
	h := newTestPushHandler()

	var msg PubSubMessage
	msg.Message.Attributes = map[string]string{"request_id": "from-attributes"}
	event := service.ActivityEvent{RequestID: "from-event"}
	ctx := deliverycontext.WithRequestID(context.Background(), "from-context")

	assert.Equal(t, "from-attributes", h.extractRequestID(ctx, &msg, &event))

	msg.Message.Attributes = nil
	assert.Equal(t, "from-event", h.extractRequestID(ctx, &msg, &event))

	event.RequestID = ""
	assert.Equal(t, "from-context", h.extractRequestID(ctx, &msg, &event))

	generated := h.extractRequestID(context.Background(), &msg, &event)
	assert.NotEmpty(t, generated)
}
