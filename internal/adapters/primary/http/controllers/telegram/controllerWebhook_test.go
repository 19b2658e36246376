package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/service"
	telegramService "github.com/admin/tg-bots/zayche-bot/internal/services/telegram"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotID = domain.BotId("zayche-test")

// stubBotService отдаёт заданную ошибку из HandleText
type stubBotService struct {
	err error
}

func (s *stubBotService) HandleText(_ context.Context, _ domain.BotId, _ *domain.User, _ string, _ int64) error {
	return s.err
}

func (s *stubBotService) HandleCommand(_ context.Context, _ domain.BotId, _ *domain.User, _ string, _ int64) error {
	return s.err
}

func (s *stubBotService) HandleCallback(_ context.Context, _ domain.BotId, _ *domain.User, _ string, _ string) error {
	return s.err
}

func (s *stubBotService) GetOrCreateUser(_ context.Context, _ domain.BotId, tgUser *domain.TelegramUser, chat *domain.Chat) (*domain.User, error) {
	chatID := tgUser.ID
	if chat != nil {
		chatID = chat.ID
	}
	return &domain.User{TelegramUserID: tgUser.ID, TelegramChatID: chatID}, nil
}

func newWebhookRouter(bot service.IBotService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tgSvc := telegramService.New(
		map[domain.BotId]domain.BotType{testBotID: domain.BotTypeZayche},
		map[domain.BotType]service.IBotService{domain.BotTypeZayche: bot},
		nil,
		log,
	)

	router := gin.New()
	New(tgSvc, log).RegisterRoutes(router)
	return router
}

func postUpdate(t *testing.T, router *gin.Engine, secretToken string) *httptest.ResponseRecorder {
	t.Helper()

	body := `{"update_id":7,"message":{"message_id":1,"chat":{"id":5,"type":"private"},"from":{"id":5,"first_name":"Test"},"text":"سلام"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secretToken != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secretToken)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleWebhook_OK(t *testing.T) {
	router := newWebhookRouter(&stubBotService{})

	rec := postUpdate(t, router, string(testBotID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestHandleWebhook_MissingSecretToken(t *testing.T) {
	router := newWebhookRouter(&stubBotService{})

	rec := postUpdate(t, router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleWebhook_UnknownBot(t *testing.T) {
	router := newWebhookRouter(&stubBotService{})

	rec := postUpdate(t, router, "stranger")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleWebhook_BusinessErrorAnsweredOK(t *testing.T) {
	// доставка ответа пользователю сорвалась: ошибка уже залогирована,
	// Telegram не должен ретраить этот апдейт
	bot := &stubBotService{err: domain.WrapBusinessError(errors.New("send failed"))}
	router := newWebhookRouter(bot)

	rec := postUpdate(t, router, string(testBotID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestHandleWebhook_SystemErrorReturns500(t *testing.T) {
	bot := &stubBotService{err: errors.New("database gone")}
	router := newWebhookRouter(bot)

	rec := postUpdate(t, router, string(testBotID))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
