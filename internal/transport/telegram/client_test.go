package telegram

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sent     []*bot.SendMessageParams
	sendErrs map[int]error // index of the send call that should fail
	admins   []models.ChatMember
}

func (f *fakeAPI) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	call := len(f.sent)
	f.sent = append(f.sent, params)
	if err, ok := f.sendErrs[call]; ok {
		return nil, err
	}
	return &models.Message{}, nil
}

func (f *fakeAPI) GetFile(_ context.Context, _ *bot.GetFileParams) (*models.File, error) {
	return &models.File{FilePath: "voice/file_1.oga"}, nil
}

func (f *fakeAPI) SendChatAction(_ context.Context, _ *bot.SendChatActionParams) (bool, error) {
	return true, nil
}

func (f *fakeAPI) SetMessageReaction(_ context.Context, _ *bot.SetMessageReactionParams) (bool, error) {
	return true, nil
}

func (f *fakeAPI) GetChatAdministrators(_ context.Context, _ *bot.GetChatAdministratorsParams) ([]models.ChatMember, error) {
	return f.admins, nil
}

func newTestClient(api *fakeAPI) *Client {
	return &Client{
		api:    api,
		http:   http.DefaultClient,
		token:  "test-token",
		apiURL: defaultAPIURL,
	}
}

func TestSendTextChunkingAndThreading(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(api)

	text := strings.Repeat("y", 5000)
	err := client.SendText(context.Background(), 42, text, SendOptions{ReplyTo: 7, Silent: true})
	require.NoError(t, err)

	require.Len(t, api.sent, 3)
	for i, params := range api.sent {
		assert.LessOrEqual(t, len([]rune(params.Text)), maxMessageLength)
		assert.True(t, params.DisableNotification)
		if i == 0 {
			require.NotNil(t, params.ReplyParameters)
			assert.Equal(t, 7, params.ReplyParameters.MessageID)
		} else {
			assert.Nil(t, params.ReplyParameters, "only the first chunk is threaded")
		}
	}
}

func TestSendTextChunkFailureAbortsRest(t *testing.T) {
	api := &fakeAPI{sendErrs: map[int]error{1: oops.Errorf("Bad Request: message is too long")}}
	client := newTestClient(api)

	err := client.SendText(context.Background(), 42, strings.Repeat("z", 5000), SendOptions{})
	require.Error(t, err)
	assert.Len(t, api.sent, 2, "the failing chunk must abort the remaining sends")
	assert.Contains(t, err.Error(), "message is too long")
}

func TestSendTextLinkPreviewSuppression(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(api)

	require.NoError(t, client.SendText(context.Background(), 1, "see https://example.com", SendOptions{NoLinkPreview: true}))
	require.Len(t, api.sent, 1)
	require.NotNil(t, api.sent[0].LinkPreviewOptions)
	assert.True(t, *api.sent[0].LinkPreviewOptions.IsDisabled)
}

func TestAdminIDs(t *testing.T) {
	api := &fakeAPI{admins: []models.ChatMember{
		{Owner: &models.ChatMemberOwner{User: &models.User{ID: 10}}},
		{Administrator: &models.ChatMemberAdministrator{User: models.User{ID: 20}}},
		{}, // malformed member entries are skipped
	}}
	client := newTestClient(api)

	ids, err := client.AdminIDs(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, ids)
}
