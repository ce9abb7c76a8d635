// Package telegram wraps the Telegram Bot API calls the pipeline needs:
// file resolution and download, chunked text sending, typing indication,
// emoji reactions and admin-list lookup.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const defaultAPIURL = "https://api.telegram.org"

// botAPI is the subset of *bot.Bot the client uses.
type botAPI interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	SetMessageReaction(ctx context.Context, params *bot.SetMessageReactionParams) (bool, error)
	GetChatAdministrators(ctx context.Context, params *bot.GetChatAdministratorsParams) ([]models.ChatMember, error)
}

// SendOptions control one outbound text message.
type SendOptions struct {
	// ReplyTo threads the message to the given message ID when non-zero.
	// Only the first chunk of a long message is threaded.
	ReplyTo int
	// Silent suppresses the recipient's notification.
	Silent bool
	// NoLinkPreview suppresses link previews.
	NoLinkPreview bool
}

// Client is the messaging collaborator of the pipeline.
type Client struct {
	api    botAPI
	http   *http.Client
	token  string
	apiURL string
}

// New wraps an initialized bot.
func New(b *bot.Bot, token string) *Client {
	return &Client{
		api:    b,
		http:   &http.Client{Timeout: 60 * time.Second},
		token:  token,
		apiURL: defaultAPIURL,
	}
}

// DownloadFile resolves a file ID to its download URL and fetches the bytes.
// Both steps are hard failures on a non-success response.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.api.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, oops.With("file_id", fileID).Wrap(err)
	}
	if file.FilePath == "" {
		return nil, oops.With("file_id", fileID).Errorf("file path not found in response")
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", c.apiURL, c.token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, oops.With("file_id", fileID).Wrap(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, oops.With("file_id", fileID).Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, oops.
			With("file_id", fileID).
			With("status", resp.StatusCode).
			Errorf("failed to download file")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oops.With("file_id", fileID).Wrap(err)
	}
	return data, nil
}

// SendText sends text to a chat with Markdown parse mode, splitting it into
// chunks when it exceeds the platform length threshold. Chunks are sent
// sequentially; only the first carries the reply threading. A chunk failure
// aborts the remaining chunks.
func (c *Client) SendText(ctx context.Context, chatID int64, text string, opts SendOptions) error {
	chunks := splitChunks(text, maxMessageLength)

	for i, chunk := range chunks {
		params := &bot.SendMessageParams{
			ChatID:              chatID,
			Text:                chunk,
			ParseMode:           models.ParseModeMarkdown,
			DisableNotification: opts.Silent,
		}
		if opts.ReplyTo != 0 && i == 0 {
			params.ReplyParameters = &models.ReplyParameters{MessageID: opts.ReplyTo}
		}
		if opts.NoLinkPreview {
			params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: bot.True()}
		}

		if _, err := c.api.SendMessage(ctx, params); err != nil {
			return oops.
				With("chat_id", chatID).
				With("chunk", fmt.Sprintf("%d/%d", i+1, len(chunks))).
				Wrap(err)
		}
	}
	return nil
}

// SendTyping shows the ephemeral "typing…" status in the chat.
func (c *Client) SendTyping(ctx context.Context, chatID int64) error {
	_, err := c.api.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	if err != nil {
		return oops.With("chat_id", chatID).Wrap(err)
	}
	return nil
}

// React sets an emoji reaction on a message.
func (c *Client) React(ctx context.Context, chatID int64, messageID int, emoji string) error {
	_, err := c.api.SetMessageReaction(ctx, &bot.SetMessageReactionParams{
		ChatID:    chatID,
		MessageID: messageID,
		Reaction: []models.ReactionType{
			{
				Type: models.ReactionTypeTypeEmoji,
				ReactionTypeEmoji: &models.ReactionTypeEmoji{
					Type:  "emoji",
					Emoji: emoji,
				},
			},
		},
	})
	if err != nil {
		return oops.With("chat_id", chatID).With("message_id", messageID).Wrap(err)
	}
	return nil
}

// AdminIDs fetches the user IDs of a chat's administrators. The list is
// fetched fresh on every call, never cached across messages.
func (c *Client) AdminIDs(ctx context.Context, chatID int64) ([]int64, error) {
	members, err := c.api.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{ChatID: chatID})
	if err != nil {
		return nil, oops.With("chat_id", chatID).Wrap(err)
	}

	ids := lo.FilterMap(members, func(member models.ChatMember, _ int) (int64, bool) {
		switch {
		case member.Owner != nil && member.Owner.User != nil:
			return member.Owner.User.ID, true
		case member.Administrator != nil:
			return member.Administrator.User.ID, true
		default:
			return 0, false
		}
	})
	return ids, nil
}
