package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"

	"golang.org/x/time/rate"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	apiTimeout         = 30 * time.Second
	maxSendAttempts    = 3
)

// Client клиент для работы с Telegram Bot API.
// Исходящие сообщения троттлятся лимитером; на 429 повторяем с
// экспоненциальной задержкой, уважая retry_after из ответа API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient создаёт новый клиент для Telegram Bot API
func NewClient(token string, sendRatePerSec int, log *slog.Logger) *Client {
	if sendRatePerSec <= 0 {
		sendRatePerSec = 25 // глобальный лимит Bot API ~30 msg/sec
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: apiTimeout,
		},
		baseURL: telegramAPIBaseURL + token,
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(sendRatePerSec), sendRatePerSec),
		log:     log,
	}
}

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	ChatID          int64                  `json:"chat_id"`
	Text            string                 `json:"text"`
	ParseMode       string                 `json:"parse_mode,omitempty"` // "HTML", "Markdown", "MarkdownV2"
	ReplyMarkup     map[string]interface{} `json:"reply_markup,omitempty"`
	MessageThreadID *int64                 `json:"message_thread_id,omitempty"` // топик форума
}

// SendMessageWithRequest отправляет сообщение с полным контролем над параметрами
func (c *Client) SendMessageWithRequest(ctx context.Context, req SendMessageRequest) error {
	return c.sendMessage(ctx, req)
}

// SendMessage отправляет текстовое сообщение
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	req := SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}

	return c.sendMessage(ctx, req)
}

// SendMessageWithKeyboard отправляет сообщение с inline клавиатурой
func (c *Client) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard map[string]interface{}) error {
	req := SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	}

	return c.sendMessage(ctx, req)
}

// sendMessage выполняет запрос к Telegram API с ретраями на rate-limit
func (c *Client) sendMessage(ctx context.Context, req SendMessageRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		c.log.Error("failed to marshal request",
			"error", err,
			"chat_id", req.ChatID,
		)
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	backoff := time.Second
	var lastErr error

	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}

		apiResp, err := c.postJSON(ctx, "/sendMessage", jsonData)
		if err != nil {
			c.log.Error("failed to send request to telegram",
				"error", err,
				"chat_id", req.ChatID,
				"attempt", attempt,
			)
			return err
		}

		if apiResp.OK {
			c.log.Debug("message sent successfully", "chat_id", req.ChatID)
			return nil
		}

		if apiResp.ErrorCode == http.StatusTooManyRequests {
			wait := backoff
			if apiResp.Parameters != nil && apiResp.Parameters.RetryAfter > 0 {
				wait = time.Duration(apiResp.Parameters.RetryAfter) * time.Second
			}
			c.log.Warn("telegram rate limit, retrying",
				"chat_id", req.ChatID,
				"attempt", attempt,
				"wait", wait,
			)
			lastErr = fmt.Errorf("telegram rate limited: %s", apiResp.Description)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			backoff *= 2
			continue
		}

		c.log.Error("telegram API returned error",
			"error_code", apiResp.ErrorCode,
			"description", apiResp.Description,
			"chat_id", req.ChatID,
		)
		return fmt.Errorf("telegram API error: %s (code: %d)", apiResp.Description, apiResp.ErrorCode)
	}

	return fmt.Errorf("telegram send failed after %d attempts: %w", maxSendAttempts, lastErr)
}

// postJSON выполняет POST запрос и парсит базовый APIResponse
func (c *Client) postJSON(ctx context.Context, method string, jsonData []byte) (*APIResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+method, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		c.log.Error("failed to unmarshal response",
			"error", err,
			"method", method,
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &apiResp, nil
}

// GetMe получает информацию о боте
func (c *Client) GetMe(ctx context.Context) error {
	url := c.baseURL + "/getMe"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("getMe failed",
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("getMe failed with status %d", resp.StatusCode)
	}

	c.log.Info("bot info retrieved successfully")
	return nil
}

// BotCommand представляет команду бота
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// SetMyCommands регистрирует команды бота в меню
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	reqBody := struct {
		Commands []BotCommand `json:"commands"`
	}{
		Commands: commands,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	apiResp, err := c.postJSON(ctx, "/setMyCommands", jsonData)
	if err != nil {
		return err
	}

	if !apiResp.OK {
		c.log.Error("telegram API returned error",
			"error_code", apiResp.ErrorCode,
			"description", apiResp.Description,
		)
		return fmt.Errorf("telegram API error: %s (code: %d)", apiResp.Description, apiResp.ErrorCode)
	}

	c.log.Info("bot commands registered successfully", "commands_count", len(commands))
	return nil
}

// SetWebhook устанавливает webhook с секретным токеном
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	reqBody := struct {
		URL         string `json:"url"`
		SecretToken string `json:"secret_token,omitempty"`
	}{
		URL:         webhookURL,
		SecretToken: secretToken,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	apiResp, err := c.postJSON(ctx, "/setWebhook", jsonData)
	if err != nil {
		return err
	}

	if !apiResp.OK {
		return fmt.Errorf("telegram API error: %s (code: %d)", apiResp.Description, apiResp.ErrorCode)
	}

	c.log.Info("webhook set successfully", "url", webhookURL)
	return nil
}
