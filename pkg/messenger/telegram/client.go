package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/pkg/messenger"
)

// Client sends messages through the Telegram Bot API. The chat id doubles as
// the helpdesk identity.
type Client struct {
	BotToken string
	BaseURL  string
	HTTP     *http.Client
}

var _ messenger.Messenger = &Client{}

func NewClient(botToken string) *Client {
	return &Client{
		BotToken: botToken,
		BaseURL:  "https://api.telegram.org",
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type sendMessageRequest struct {
	ChatId      string       `json:"chat_id"`
	Text        string       `json:"text"`
	ReplyMarkup *replyMarkup `json:"reply_markup,omitempty"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) Send(ctx context.Context, identity, text string, buttons []dto.OutgoingButton) error {
	payload := sendMessageRequest{
		ChatId: identity,
		Text:   text,
	}
	if len(buttons) > 0 {
		row := make([]inlineButton, len(buttons))
		for i, b := range buttons {
			row[i] = inlineButton{Text: b.Text, CallbackData: b.Data}
		}
		payload.ReplyMarkup = &replyMarkup{InlineKeyboard: [][]inlineButton{row}}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.BaseURL, c.BotToken)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if !apiResp.Ok {
		return fmt.Errorf("telegram error: status %d, description: %s", resp.StatusCode, apiResp.Description)
	}

	return nil
}
