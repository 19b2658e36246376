package telegram

import (
	"fmt"
	"sync"

	"log/slog"

	TgClient "github.com/admin/tg-bots/zayche-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/service"
)

type Service struct {
	BotIDToType      map[domain.BotId]domain.BotType        // botID → botType (для роутинга к UseCase)
	BotTypeToUsecase map[domain.BotType]service.IBotService // botType → UseCase
	TelegramClients  map[domain.BotId]*TgClient.Client      // botID → Client
	Log              *slog.Logger

	chatLocks sync.Map // chat_id → *sync.Mutex, последовательная обработка апдейтов чата
}

func New(
	botIDToType map[domain.BotId]domain.BotType,
	botServices map[domain.BotType]service.IBotService,
	telegramClients map[domain.BotId]*TgClient.Client,
	log *slog.Logger,
) *Service {
	return &Service{
		BotIDToType:      botIDToType,
		BotTypeToUsecase: botServices,
		TelegramClients:  telegramClients,
		Log:              log,
	}
}

// SetBotServices устанавливает botServices (для случаев когда нужно обновить после создания)
func (s *Service) SetBotServices(botServices map[domain.BotType]service.IBotService) {
	s.BotTypeToUsecase = botServices
}

// lockChat берёт мьютекс чата и возвращает функцию освобождения.
// Апдейты приходят из webhook/polling в отдельных горутинах, а шаги опроса -
// это read-modify-write по сессии: без сериализации два быстрых сообщения
// одного пользователя увидят один и тот же шаг и одно из них потеряется.
func (s *Service) lockChat(chatID int64) func() {
	v, _ := s.chatLocks.LoadOrStore(chatID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetBotType возвращает botType для указанного botID
func (s *Service) GetBotType(botID domain.BotId) (domain.BotType, error) {
	botType, ok := s.BotIDToType[botID]
	if !ok {
		return "", fmt.Errorf("bot_type not found for bot_id: %s", botID)
	}
	return botType, nil
}
