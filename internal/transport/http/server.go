// Package http exposes the Telegram webhook endpoint. Once a request has
// passed authentication and schema checks, the response is always 200 so the
// platform never retry-storms over internal failures.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sloghttp "github.com/samber/slog-http"

	pipelineService "github.com/voicescribe/voicescribe-bot/internal/modules/pipeline/service"
	"github.com/voicescribe/voicescribe-bot/internal/modules/update/domain"
	"github.com/voicescribe/voicescribe-bot/internal/shared/config"
	"github.com/voicescribe/voicescribe-bot/internal/shared/goroutine"
)

// secretHeader carries the shared secret Telegram echoes back on every
// webhook delivery.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Server handles webhook HTTP requests
type Server struct {
	cfg      *config.Config
	pipeline *pipelineService.Service
	logger   *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, pipeline *pipelineService.Service) *Server {
	return &Server{
		cfg:      cfg,
		pipeline: pipeline,
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler builds the routed handler; exposed separately from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Telegram webhook endpoint
	mux.HandleFunc("POST /telegram/webhook", s.handleWebhook)

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)
	return handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Webhook server starting", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(secretHeader) != s.cfg.TelegramWebhookSecret {
		s.logger.Warn("Unauthorized webhook request", "remote_addr", r.RemoteAddr)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var upd domain.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.logger.Warn("Malformed webhook payload", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s.dispatch(r.Context(), &upd)
	w.WriteHeader(http.StatusOK)
}

// dispatch runs voice/audio processing in the background so the webhook
// response is not delayed by transcription latency. Cancellation of the
// background task is not supported; it runs until the pipeline returns.
func (s *Server) dispatch(ctx context.Context, upd *domain.Update) {
	if upd.Message != nil {
		kind := upd.Message.Kind()
		if kind == domain.MessageKindVoice || kind == domain.MessageKindAudio {
			bgCtx := context.WithoutCancel(ctx)
			goroutine.SafeGo("process-audio-update", func() {
				if err := s.pipeline.HandleUpdate(bgCtx, upd); err != nil {
					s.logger.Error("Audio pipeline failed",
						"update_id", upd.UpdateID, "chat_id", upd.Message.Chat.ID, "error", err)
				}
			})
			return
		}
	}

	if err := s.pipeline.HandleUpdate(ctx, upd); err != nil {
		s.logger.Error("Update handling failed", "update_id", upd.UpdateID, "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
