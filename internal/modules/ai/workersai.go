package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/samber/oops"
)

const defaultBaseURL = "https://api.cloudflare.com"

// WorkersAI calls Cloudflare Workers AI over its REST API:
// POST /client/v4/accounts/{account}/ai/run/{model}.
type WorkersAI struct {
	BaseURL            string
	AccountID          string
	APIToken           string
	TranscriptionModel string
	TextModel          string
	HTTP               *http.Client
}

// NewWorkersAI creates a client for the given account. Model inference can
// take a while on large inputs, hence the generous timeout.
func NewWorkersAI(accountID, apiToken, transcriptionModel, textModel string) *WorkersAI {
	return &WorkersAI{
		BaseURL:            defaultBaseURL,
		AccountID:          accountID,
		APIToken:           apiToken,
		TranscriptionModel: transcriptionModel,
		TextModel:          textModel,
		HTTP:               &http.Client{Timeout: 90 * time.Second},
	}
}

type runResponse struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Result struct {
		Text     string `json:"text"`     // speech-to-text models
		Response string `json:"response"` // text generation models
	} `json:"result"`
}

func (c *WorkersAI) Transcribe(ctx context.Context, audio []byte) (string, error) {
	payload := map[string]any{
		"audio": base64.StdEncoding.EncodeToString(audio),
	}

	result, err := c.run(ctx, c.TranscriptionModel, payload)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Result.Text), nil
}

func (c *WorkersAI) Refine(ctx context.Context, text string) (string, error) {
	return c.chat(ctx, refinePrompt, text, refineMaxTokens(text))
}

func (c *WorkersAI) Summarize(ctx context.Context, text string) (string, error) {
	return c.chat(ctx, summarizePrompt, text, 0)
}

func (c *WorkersAI) chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	payload := map[string]any{
		"messages": []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if maxTokens > 0 {
		payload["max_tokens"] = maxTokens
	}

	result, err := c.run(ctx, c.TextModel, payload)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Result.Response), nil
}

func (c *WorkersAI) run(ctx context.Context, model string, payload any) (*runResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, oops.With("model", model).Wrap(err)
	}

	url := fmt.Sprintf("%s/client/v4/accounts/%s/ai/run/%s", strings.TrimRight(c.BaseURL, "/"), c.AccountID, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, oops.With("model", model).Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, oops.With("model", model).Wrap(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oops.With("model", model).Wrap(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, oops.
			With("model", model).
			With("status", resp.StatusCode).
			With("body", string(raw)).
			Errorf("workers ai request failed")
	}

	var parsed runResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, oops.With("model", model).With("body", string(raw)).Wrap(err)
	}
	if !parsed.Success {
		return nil, oops.
			With("model", model).
			With("body", string(raw)).
			Errorf("workers ai reported failure")
	}

	return &parsed, nil
}

// refineMaxTokens caps the refinement output at the input length plus 10%,
// since cleanup should never grow the text materially.
func refineMaxTokens(text string) int {
	n := len(text)
	return n + (n+9)/10
}
