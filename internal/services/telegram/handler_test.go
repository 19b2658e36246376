package telegram

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotID = domain.BotId("zayche-test")

// surveyBotService имитирует read-modify-write по шагу опроса:
// каждый HandleText читает шаг, выдерживает паузу и только потом двигает его.
// Без сериализации два параллельных сообщения видят один шаг.
type surveyBotService struct {
	mu           sync.Mutex
	step         domain.ConversationStep
	dateAccepted int

	active      int
	maxParallel int
	textCalls   int
}

func (f *surveyBotService) HandleText(_ context.Context, _ domain.BotId, _ *domain.User, _ string, _ int64) error {
	f.mu.Lock()
	f.active++
	if f.active > f.maxParallel {
		f.maxParallel = f.active
	}
	f.textCalls++
	step := f.step
	f.mu.Unlock()

	// окно между чтением шага и его сдвигом
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	if step == domain.StepAwaitingDate {
		f.dateAccepted++
		f.step = domain.StepAwaitingTime
	}
	f.active--
	f.mu.Unlock()
	return nil
}

func (f *surveyBotService) HandleCommand(_ context.Context, _ domain.BotId, _ *domain.User, _ string, _ int64) error {
	return nil
}

func (f *surveyBotService) HandleCallback(_ context.Context, _ domain.BotId, _ *domain.User, _ string, _ string) error {
	f.mu.Lock()
	f.active++
	if f.active > f.maxParallel {
		f.maxParallel = f.active
	}
	f.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.active--
	f.mu.Unlock()
	return nil
}

func (f *surveyBotService) GetOrCreateUser(_ context.Context, _ domain.BotId, tgUser *domain.TelegramUser, chat *domain.Chat) (*domain.User, error) {
	chatID := tgUser.ID
	if chat != nil {
		chatID = chat.ID
	}
	return &domain.User{TelegramUserID: tgUser.ID, TelegramChatID: chatID, FirstName: tgUser.FirstName}, nil
}

func newTestService(bot service.IBotService) *Service {
	return New(
		map[domain.BotId]domain.BotType{testBotID: domain.BotTypeZayche},
		map[domain.BotType]service.IBotService{domain.BotTypeZayche: bot},
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func textUpdate(updateID, chatID int64, text string) *domain.Update {
	return &domain.Update{
		UpdateID: updateID,
		Message: &domain.Message{
			MessageID: updateID,
			From:      &domain.TelegramUser{ID: chatID, FirstName: "Test"},
			Chat:      &domain.Chat{ID: chatID, Type: "private"},
			Text:      &text,
		},
	}
}

func TestHandleUpdate_SerializesChatUpdates(t *testing.T) {
	bot := &surveyBotService{step: domain.StepAwaitingDate}
	svc := newTestService(bot)

	// два быстрых сообщения одного чата из разных горутин,
	// как их доставляют polling и webhook
	var wg sync.WaitGroup
	for i := int64(1); i <= 2; i++ {
		wg.Add(1)
		go func(updateID int64) {
			defer wg.Done()
			err := svc.HandleUpdate(context.Background(), testBotID, textUpdate(updateID, 100, "1370/01/01"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, bot.textCalls)
	assert.Equal(t, 1, bot.maxParallel, "updates of one chat must not overlap")
	// шаг сдвинулся ровно один раз: второе сообщение видит уже новый шаг
	assert.Equal(t, 1, bot.dateAccepted)
	assert.Equal(t, domain.StepAwaitingTime, bot.step)
}

func TestHandleUpdate_DifferentChatsDoNotBlockEachOther(t *testing.T) {
	bot := &surveyBotService{step: domain.StepAwaitingDate}
	svc := newTestService(bot)

	var wg sync.WaitGroup
	for chat := int64(1); chat <= 4; chat++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			err := svc.HandleUpdate(context.Background(), testBotID, textUpdate(chatID, chatID, "1370/01/01"))
			assert.NoError(t, err)
		}(chat)
	}
	wg.Wait()

	assert.Equal(t, 4, bot.textCalls)
}

func TestHandleUpdate_SerializesCallbacksWithMessages(t *testing.T) {
	bot := &surveyBotService{step: domain.StepAwaitingDate}
	svc := newTestService(bot)

	data := "SERVICES|ASTRO|CHART_INPUT"
	callback := &domain.Update{
		UpdateID: 10,
		CallbackQuery: &domain.CallbackQuery{
			ID:   "cb-1",
			From: &domain.TelegramUser{ID: 100, FirstName: "Test"},
			Message: &domain.Message{
				Chat: &domain.Chat{ID: 100, Type: "private"},
			},
			Data: &data,
		},
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = svc.HandleUpdate(context.Background(), testBotID, callback)
	}()
	go func() {
		defer wg.Done()
		_ = svc.HandleUpdate(context.Background(), testBotID, textUpdate(11, 100, "1370/01/01"))
	}()
	wg.Wait()

	assert.Equal(t, 1, bot.maxParallel)
}

func TestUpdateChatID(t *testing.T) {
	chatID, ok := updateChatID(textUpdate(1, 42, "hi"))
	require.True(t, ok)
	assert.Equal(t, int64(42), chatID)

	// callback без сообщения: чатом считается пользователь
	chatID, ok = updateChatID(&domain.Update{
		CallbackQuery: &domain.CallbackQuery{From: &domain.TelegramUser{ID: 7}},
	})
	require.True(t, ok)
	assert.Equal(t, int64(7), chatID)

	_, ok = updateChatID(&domain.Update{UpdateID: 1})
	assert.False(t, ok)
}
