package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipelineService "github.com/voicescribe/voicescribe-bot/internal/modules/pipeline/service"
	statsdomain "github.com/voicescribe/voicescribe-bot/internal/modules/stats/domain"
	"github.com/voicescribe/voicescribe-bot/internal/shared/config"
	"github.com/voicescribe/voicescribe-bot/internal/transport/telegram"
)

const testSecret = "secret-token-123"

type stubMessenger struct {
	sent chan string
}

func (m *stubMessenger) DownloadFile(_ context.Context, _ string) ([]byte, error) {
	return []byte{1}, nil
}

func (m *stubMessenger) SendText(_ context.Context, _ int64, text string, _ telegram.SendOptions) error {
	m.sent <- text
	return nil
}

func (m *stubMessenger) SendTyping(_ context.Context, _ int64) error { return nil }

func (m *stubMessenger) React(_ context.Context, _ int64, _ int, _ string) error { return nil }

func (m *stubMessenger) AdminIDs(_ context.Context, _ int64) ([]int64, error) { return nil, nil }

type stubAI struct{}

func (stubAI) Transcribe(_ context.Context, _ []byte) (string, error) {
	return "Hello there friend", nil
}

func (stubAI) Refine(_ context.Context, _ string) (string, error) {
	return "Hello there, friend.", nil
}

func (stubAI) Summarize(_ context.Context, _ string) (string, error) {
	return "Short.", nil
}

type stubStats struct{}

func (stubStats) Record(_ context.Context) error { return nil }

func (stubStats) Totals(_ context.Context) (statsdomain.Totals, error) {
	return statsdomain.Totals{}, nil
}

type stubLimiter struct{}

func (stubLimiter) Allow(_ int64) bool { return true }

func newTestServer(messenger *stubMessenger) *Server {
	cfg := &config.Config{
		TelegramWebhookSecret: testSecret,
		MaxAudioDuration:      300,
		HTTPPort:              "8080",
	}
	pipeline := pipelineService.New(cfg, messenger, stubAI{}, stubStats{}, stubLimiter{})
	return New(cfg, pipeline)
}

func postWebhook(t *testing.T, handler http.Handler, secret, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(secretHeader, secret)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	handler := newTestServer(&stubMessenger{}).Handler()

	rec := postWebhook(t, handler, "wrong-secret", `{"update_id": 1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postWebhook(t, handler, "", `{"update_id": 1}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWebhookRejectsMalformedJSON(t *testing.T) {
	handler := newTestServer(&stubMessenger{}).Handler()

	rec := postWebhook(t, handler, testSecret, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookAcknowledgesUpdateWithoutMessage(t *testing.T) {
	handler := newTestServer(&stubMessenger{}).Handler()

	rec := postWebhook(t, handler, testSecret, `{"update_id": 2}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookToleratesMalformedMessageShape(t *testing.T) {
	handler := newTestServer(&stubMessenger{}).Handler()

	rec := postWebhook(t, handler, testSecret, `{"update_id": 3, "message": {"message_id": "oops"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookProcessesVoiceInBackground(t *testing.T) {
	messenger := &stubMessenger{sent: make(chan string, 1)}
	handler := newTestServer(messenger).Handler()

	body := `{
		"update_id": 4,
		"message": {
			"message_id": 10,
			"chat": {"id": 5, "type": "private"},
			"from": {"id": 9},
			"voice": {"file_id": "f1", "duration": 30}
		}
	}`

	rec := postWebhook(t, handler, testSecret, body)
	assert.Equal(t, http.StatusOK, rec.Code, "the webhook acknowledges before processing finishes")

	select {
	case text := <-messenger.sent:
		assert.Equal(t, "Hello there, friend.", text)
	case <-time.After(2 * time.Second):
		t.Fatal("voice processing did not complete")
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(&stubMessenger{}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
