package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/service"
)

// HandleUpdate Основной метод для обработки всех типов обновлений
func (s *Service) HandleUpdate(ctx context.Context, botID domain.BotId, update *domain.Update) error {
	if update == nil {
		return fmt.Errorf("update is nil")
	}

	// Апдейты одного чата обрабатываются строго по одному
	if chatID, ok := updateChatID(update); ok {
		unlock := s.lockChat(chatID)
		defer unlock()
	}

	if update.Message != nil {
		return s.HandleMessage(ctx, botID, update.Message, update.UpdateID)
	}

	if update.CallbackQuery != nil {
		return s.HandleCallbackQuery(ctx, botID, update.CallbackQuery, update.UpdateID)
	}

	return nil
}

// updateChatID извлекает chat_id апдейта; в callback без сообщения
// чатом считается сам пользователь (приватный чат)
func updateChatID(update *domain.Update) (int64, bool) {
	if update.Message != nil {
		if update.Message.Chat != nil {
			return update.Message.Chat.ID, true
		}
		if update.Message.From != nil {
			return update.Message.From.ID, true
		}
	}
	if update.CallbackQuery != nil {
		if update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
			return update.CallbackQuery.Message.Chat.ID, true
		}
		if update.CallbackQuery.From != nil {
			return update.CallbackQuery.From.ID, true
		}
	}
	return 0, false
}

// HandleMessage обрабатывает входящее сообщение - роутинг в usecase
func (s *Service) HandleMessage(ctx context.Context, botID domain.BotId, message *domain.Message, updateID int64) error {
	if message == nil {
		return fmt.Errorf("message is nil")
	}

	if message.From == nil || message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "update_id", updateID)
		return nil
	}

	if message.Chat != nil && message.Chat.Type != "private" {
		s.Log.Warn("ignoring message from group/chat",
			"update_id", updateID,
			"chat_type", message.Chat.Type,
			"chat_id", message.Chat.ID,
		)
		return nil
	}

	// Определяем botType из botID через маппинг
	botType, err := s.GetBotType(botID)
	if err != nil {
		return fmt.Errorf("failed to get bot_type for bot_id %s: %w", botID, err)
	}

	botService, ok := s.BotTypeToUsecase[botType]
	if !ok {
		return fmt.Errorf("unknown bot_type: %s", botType)
	}

	// Получаем или создаём пользователя через use case
	user, err := botService.GetOrCreateUser(ctx, botID, message.From, message.Chat)
	if err != nil {
		s.Log.Error("failed to get or create user",
			"error", err,
			"telegram_user_id", message.From.ID,
			"update_id", updateID,
			"bot_id", botID,
		)
		return fmt.Errorf("failed to get or create user: %w", err)
	}

	if message.Text != nil {
		return s.routeTextMessage(ctx, botID, botService, user, *message.Text, updateID)
	}

	return nil
}

// HandleCallbackQuery обрабатывает нажатие inline-кнопки
func (s *Service) HandleCallbackQuery(ctx context.Context, botID domain.BotId, query *domain.CallbackQuery, updateID int64) error {
	if query == nil || query.From == nil {
		return fmt.Errorf("callback_query is nil or has no from")
	}

	botType, err := s.GetBotType(botID)
	if err != nil {
		return fmt.Errorf("failed to get bot_type for bot_id %s: %w", botID, err)
	}

	botService, ok := s.BotTypeToUsecase[botType]
	if !ok {
		return fmt.Errorf("unknown bot_type: %s", botType)
	}

	var chat *domain.Chat
	if query.Message != nil {
		chat = query.Message.Chat
	}

	user, err := botService.GetOrCreateUser(ctx, botID, query.From, chat)
	if err != nil {
		s.Log.Error("failed to get or create user",
			"error", err,
			"telegram_user_id", query.From.ID,
			"update_id", updateID,
			"bot_id", botID,
		)
		return fmt.Errorf("failed to get or create user: %w", err)
	}

	data := ""
	if query.Data != nil {
		data = *query.Data
	}

	return botService.HandleCallback(ctx, botID, user, query.ID, data)
}

// routeTextMessage роутит в команду/текст
func (s *Service) routeTextMessage(ctx context.Context, botID domain.BotId, botService service.IBotService, user *domain.User, text string, updateID int64) error {
	if IsCommand(text) {
		command := ParseCommand(text)
		return botService.HandleCommand(ctx, botID, user, command, updateID)
	}

	return botService.HandleText(ctx, botID, user, text, updateID)
}

func ParseCommand(text string) string {
	text = strings.TrimPrefix(text, "/")

	if idx := strings.Index(text, "@"); idx != -1 {
		text = text[:idx]
	}

	if idx := strings.Index(text, " "); idx != -1 {
		text = text[:idx]
	}

	return text
}

func IsCommand(text string) bool {
	return len(text) > 0 && text[0] == '/'
}
