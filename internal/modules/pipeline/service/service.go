// Package service drives the processing of one inbound update: command
// dispatch for text messages and the transcribe → refine/summarize → reply
// sequence for voice and audio messages.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/voicescribe/voicescribe-bot/internal/modules/ai"
	statsdomain "github.com/voicescribe/voicescribe-bot/internal/modules/stats/domain"
	"github.com/voicescribe/voicescribe-bot/internal/modules/update/domain"
	"github.com/voicescribe/voicescribe-bot/internal/shared/apperrors"
	"github.com/voicescribe/voicescribe-bot/internal/shared/config"
	"github.com/voicescribe/voicescribe-bot/internal/shared/locale"
	"github.com/voicescribe/voicescribe-bot/internal/transport/telegram"
)

const (
	// Transcripts below this length are treated as a failed transcription
	// rather than trusted as real content.
	minUsableLength = 5

	// Raw transcripts longer than this are summarized instead of refined.
	refineThreshold = 2000

	// failureReaction signals a processing failure on the original message.
	failureReaction = "🤨"
)

// Messenger is the chat platform collaborator.
type Messenger interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	SendText(ctx context.Context, chatID int64, text string, opts telegram.SendOptions) error
	SendTyping(ctx context.Context, chatID int64) error
	React(ctx context.Context, chatID int64, messageID int, emoji string) error
	AdminIDs(ctx context.Context, chatID int64) ([]int64, error)
}

// Stats is the usage counter collaborator.
type Stats interface {
	Record(ctx context.Context) error
	Totals(ctx context.Context) (statsdomain.Totals, error)
}

// Limiter consumes one token per call, keyed by user or chat ID.
type Limiter interface {
	Allow(key int64) bool
}

// Service processes validated inbound updates.
type Service struct {
	cfg       *config.Config
	messenger Messenger
	ai        ai.Client
	stats     Stats
	limiter   Limiter
}

// New creates a new pipeline service
func New(cfg *config.Config, messenger Messenger, aiClient ai.Client, stats Stats, limiter Limiter) *Service {
	return &Service{
		cfg:       cfg,
		messenger: messenger,
		ai:        aiClient,
		stats:     stats,
		limiter:   limiter,
	}
}

// HandleUpdate dispatches one update by message kind. Updates without a
// message, and messages that are neither text nor voice nor audio, are
// accepted but produce no action.
func (s *Service) HandleUpdate(ctx context.Context, upd *domain.Update) error {
	if upd.Message == nil {
		slog.Info("Update without a supported message, skipping", "update_id", upd.UpdateID)
		return nil
	}

	switch upd.Message.Kind() {
	case domain.MessageKindText:
		return s.handleText(ctx, upd.Message)
	case domain.MessageKindVoice, domain.MessageKindAudio:
		return s.handleAudio(ctx, upd.Message)
	default:
		slog.Info("Unsupported message kind, skipping",
			"update_id", upd.UpdateID, "chat_id", upd.Message.Chat.ID)
		return nil
	}
}

// handleText handles command messages. Only /start, /help and /stats produce
// a reply; all other text is ignored silently. In group chats commands are
// admin-only, with the admin list fetched fresh on every invocation.
func (s *Service) handleText(ctx context.Context, msg *domain.Message) error {
	text := strings.TrimSpace(msg.Text)
	lang := msg.SenderLanguage()

	if msg.Chat.Type != domain.ChatTypePrivate {
		if msg.From == nil {
			return oops.With("chat_id", msg.Chat.ID).Wrap(apperrors.ErrForbidden)
		}

		adminIDs, err := s.messenger.AdminIDs(ctx, msg.Chat.ID)
		if err != nil {
			return oops.With("chat_id", msg.Chat.ID).Wrap(err)
		}
		if !lo.Contains(adminIDs, msg.From.ID) {
			return oops.
				With("chat_id", msg.Chat.ID).
				With("user_id", msg.From.ID).
				Wrap(apperrors.ErrForbidden)
		}
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		return s.messenger.SendText(ctx, msg.Chat.ID, locale.T(lang, "messages.welcome", nil), telegram.SendOptions{})

	case strings.HasPrefix(text, "/help"):
		return s.messenger.SendText(ctx, msg.Chat.ID, locale.T(lang, "messages.help", nil), telegram.SendOptions{NoLinkPreview: true})

	case strings.HasPrefix(text, "/stats"):
		totals, err := s.stats.Totals(ctx)
		if err != nil {
			return oops.With("chat_id", msg.Chat.ID).Wrap(err)
		}
		reply := locale.T(lang, "messages.stats", map[string]any{
			"today": totals.Today,
			"total": totals.Total,
		})
		return s.messenger.SendText(ctx, msg.Chat.ID, reply, telegram.SendOptions{})

	default:
		return nil
	}
}

// handleAudio runs the core sequence for voice and audio messages. The
// preconditions run in a fixed order: rate limit first (it protects the
// expensive resource), then the chat-type restriction, then the duration cap.
func (s *Service) handleAudio(ctx context.Context, msg *domain.Message) error {
	chatID := msg.Chat.ID
	media := msg.Media()
	lang := msg.SenderLanguage()

	if !s.limiter.Allow(msg.RateLimitKey()) {
		s.react(ctx, msg)
		return oops.With("chat_id", chatID).Wrap(apperrors.ErrTooManyRequests)
	}

	// Voice notes are fine anywhere; audio-file uploads only one-to-one.
	if msg.Kind() == domain.MessageKindAudio && msg.Chat.Type != domain.ChatTypePrivate {
		return oops.With("chat_id", chatID).Wrap(apperrors.ErrConflict)
	}

	if media.Duration > s.cfg.MaxAudioDuration {
		s.react(ctx, msg)
		return oops.
			With("chat_id", chatID).
			With("duration", media.Duration).
			With("max", s.cfg.MaxAudioDuration).
			Wrap(apperrors.ErrPayloadTooLarge)
	}

	// Ephemeral status only; never aborts the pipeline.
	if err := s.messenger.SendTyping(ctx, chatID); err != nil {
		slog.Error("Failed to send chat action", "chat_id", chatID, "error", err)
	}

	audio, err := s.messenger.DownloadFile(ctx, media.FileID)
	if err != nil {
		return err
	}

	transcript, err := s.transcribe(ctx, audio, lang)
	if err != nil {
		// Model-quality failures get user-visible feedback; infrastructure
		// failures above do not.
		s.react(ctx, msg)
		return err
	}

	if err := s.messenger.SendText(ctx, chatID, transcript, telegram.SendOptions{
		ReplyTo: msg.MessageID,
		Silent:  true,
	}); err != nil {
		return err
	}

	// Accounting must never fail the request after the reply went out.
	if err := s.stats.Record(ctx); err != nil {
		slog.Error("Failed to record transcription", "chat_id", chatID, "error", err)
	}
	return nil
}

// transcribe converts audio to text and refines it, or summarizes when the
// raw transcript exceeds the refinement threshold. Outputs that are too short
// or equal to the model's empty-result sentinel are failures.
func (s *Service) transcribe(ctx context.Context, audio []byte, lang string) (string, error) {
	raw, err := s.ai.Transcribe(ctx, audio)
	if err != nil {
		return "", err
	}
	if len([]rune(raw)) < minUsableLength {
		return "", oops.With("transcript_length", len(raw)).Wrap(apperrors.ErrFailedDependency)
	}

	var refined string
	var notice string
	if len([]rune(raw)) <= refineThreshold {
		refined, err = s.ai.Refine(ctx, raw)
	} else {
		refined, err = s.ai.Summarize(ctx, raw)
		notice = "\n\n" + locale.T(lang, "messages.summarized", nil)
	}
	if err != nil {
		return "", err
	}
	if len([]rune(refined)) < minUsableLength || refined == ai.NoContent {
		return "", oops.With("refined_length", len(refined)).Wrap(apperrors.ErrFailedDependency)
	}

	return refined + notice, nil
}

// react is a best-effort failure signal; its own failure is only logged.
func (s *Service) react(ctx context.Context, msg *domain.Message) {
	if err := s.messenger.React(ctx, msg.Chat.ID, msg.MessageID, failureReaction); err != nil {
		slog.Error("Failed to set message reaction",
			"chat_id", msg.Chat.ID, "message_id", msg.MessageID, "error", err)
	}
}
