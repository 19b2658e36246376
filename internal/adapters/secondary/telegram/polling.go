package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"log/slog"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
)

// UpdateHandler функция для обработки обновлений от Telegram
type UpdateHandler func(ctx context.Context, botID domain.BotId, update *domain.Update) error

// Poller реализует long polling для получения обновлений от Telegram.
// Каждое обновление обрабатывается в своей горутине, чтобы долгий
// геокодинг одного чата не стопорил остальных.
type Poller struct {
	client       *Client
	botID        domain.BotId
	config       *Config
	handler      UpdateHandler
	lastUpdateID int64
	log          *slog.Logger
	httpClient   *http.Client // отдельный HTTP клиент с увеличенным таймаутом для polling
}

func NewPoller(client *Client, botID domain.BotId, config *Config, handler UpdateHandler, log *slog.Logger) *Poller {
	pollingTimeout := config.PollingTimeout
	if pollingTimeout <= 0 {
		pollingTimeout = 30
	}
	// HTTP таймаут = polling timeout + запас (10 секунд)
	httpTimeout := time.Duration(pollingTimeout+10) * time.Second

	return &Poller{
		client:       client,
		botID:        botID,
		config:       config,
		handler:      handler,
		lastUpdateID: 0,
		log:          log,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// UpdateResult структура для одного обновления из getUpdates
type UpdateResult struct {
	UpdateID      int64                 `json:"update_id"`
	Message       *domain.Message       `json:"message,omitempty"`
	CallbackQuery *domain.CallbackQuery `json:"callback_query,omitempty"`
}

// GetUpdatesResponse ответ от Telegram API для getUpdates
type GetUpdatesResponse struct {
	APIResponse
	Result []UpdateResult `json:"result"`
}

// Start запускает long polling, блокирует до отмены контекста
func (p *Poller) Start(ctx context.Context) error {
	p.log.Info("starting telegram polling",
		"bot_id", p.botID,
		"timeout", p.config.PollingTimeout,
	)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("polling stopped", "bot_id", p.botID)
			return ctx.Err()
		default:
			updates, err := p.getUpdates(ctx)
			if err != nil {
				p.log.Error("failed to get updates",
					"error", err,
					"bot_id", p.botID,
				)
				// Ждём перед повтором
				time.Sleep(5 * time.Second)
				continue
			}

			for _, updateData := range updates {
				update := &domain.Update{
					UpdateID:      updateData.UpdateID,
					Message:       updateData.Message,
					CallbackQuery: updateData.CallbackQuery,
				}

				if updateData.UpdateID >= p.lastUpdateID {
					p.lastUpdateID = updateData.UpdateID + 1
				}

				go func(update *domain.Update) {
					if err := p.handler(ctx, p.botID, update); err != nil {
						// Бизнес-ошибки уже залогированы в usecase
						if domain.IsBusinessError(err) {
							p.log.Warn("update handled with business error",
								"error", err,
								"update_id", update.UpdateID,
								"bot_id", p.botID,
							)
							return
						}
						p.log.Error("failed to handle update",
							"error", err,
							"update_id", update.UpdateID,
							"bot_id", p.botID,
						)
					}
				}(update)
			}
		}
	}
}

// getUpdates получает обновления от Telegram API
func (p *Poller) getUpdates(ctx context.Context) ([]UpdateResult, error) {
	timeout := p.config.PollingTimeout
	if timeout <= 0 {
		timeout = 30 // дефолтный таймаут
	}

	url := fmt.Sprintf("%s/getUpdates?offset=%d&timeout=%d", p.client.baseURL, p.lastUpdateID, timeout)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp GetUpdatesResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		p.log.Error("failed to unmarshal response",
			"error", err,
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !apiResp.OK {
		// Ошибка 409 - конфликт (другой экземпляр бота или webhook активен)
		if apiResp.ErrorCode == 409 {
			p.log.Warn("telegram API conflict - another bot instance or webhook is active",
				"error_code", apiResp.ErrorCode,
				"description", apiResp.Description,
			)
			// Возвращаем пустой список, в следующей итерации попробуем снова
			return []UpdateResult{}, nil
		}

		p.log.Error("telegram API returned error",
			"error_code", apiResp.ErrorCode,
			"description", apiResp.Description,
			"status_code", resp.StatusCode,
		)
		return nil, fmt.Errorf("telegram API error: %s (code: %d)", apiResp.Description, apiResp.ErrorCode)
	}

	return apiResp.Result, nil
}

// DeleteWebhook удаляет webhook (нужно вызывать отдельно перед запуском polling)
func (p *Poller) DeleteWebhook(ctx context.Context) error {
	url := p.client.baseURL + "/deleteWebhook?drop_pending_updates=true"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		p.log.Warn("deleteWebhook returned non-OK status",
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("deleteWebhook failed with status %d", resp.StatusCode)
	}

	p.log.Info("webhook deleted successfully")
	return nil
}
