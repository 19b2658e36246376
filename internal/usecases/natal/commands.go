package natal

import (
	"context"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/usecases/natal/texts"
)

func (s *Service) HandleCommand(ctx context.Context, botID domain.BotId, user *domain.User, command string, updateID int64) error {
	switch command {
	case "start":
		return s.HandleStart(ctx, user)
	case "help":
		return s.HandleHelp(ctx, user)
	case "my_info":
		return s.HandleMyInfo(ctx, user)
	default:
		return s.sendMessage(ctx, user.TelegramChatID, texts.FormatUnknownCommand(command))
	}
}

// HandleStart сбрасывает опрос и показывает главное меню.
// /start работает из любого шага сценария.
func (s *Service) HandleStart(ctx context.Context, user *domain.User) error {
	s.clearSession(ctx, user.TelegramChatID)
	return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.Welcome, mainMenuKeyboard())
}

// HandleHelp обрабатывает команду /help
func (s *Service) HandleHelp(ctx context.Context, user *domain.User) error {
	return s.sendMessage(ctx, user.TelegramChatID, texts.HelpCommand)
}

// HandleMyInfo обрабатывает команду /my_info
func (s *Service) HandleMyInfo(ctx context.Context, user *domain.User) error {
	chartCount, err := s.RequestRepo.CountByUser(ctx, user.ID)
	if err != nil {
		s.Log.Warn("failed to count chart requests for my_info",
			"error", err,
			"user_id", user.ID,
		)
		chartCount = 0
	}

	message := texts.FormatMyInfo(
		user.BirthDateCivil,
		user.BirthPlace,
		user.ChartBuiltAt,
		chartCount,
	)

	return s.sendMessage(ctx, user.TelegramChatID, message)
}
