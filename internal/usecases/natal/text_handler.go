package natal

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/pkg/jalali"
	"github.com/admin/tg-bots/zayche-bot/internal/usecases/natal/texts"
)

// HandleText обрабатывает текстовые сообщения по шагам опроса.
// Невалидный ввод не сдвигает шаг: пользователю повторяется подсказка формата.
func (s *Service) HandleText(ctx context.Context, botID domain.BotId, user *domain.User, text string, updateID int64) error {
	text = strings.TrimSpace(text)

	// Перезапуск принимается и персидским словом, не только /start
	if text == texts.RestartWord {
		return s.HandleStart(ctx, user)
	}

	session, err := s.getSession(ctx, user.TelegramChatID)
	if err != nil {
		return err
	}

	switch session.Step {
	case domain.StepAwaitingDate:
		return s.handleDateInput(ctx, session, text)
	case domain.StepAwaitingTime:
		return s.handleTimeInput(ctx, session, text)
	case domain.StepAwaitingPlace:
		return s.handlePlaceInput(ctx, botID, user, session, text, updateID)
	case domain.StepAwaitingSigil:
		return s.handleSigilInput(ctx, session, text)
	default:
		// Вне сценария отвечаем главным меню, как на /start
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.Welcome, mainMenuKeyboard())
	}
}

// getSession достаёт сессию чата, создавая начальную при отсутствии
func (s *Service) getSession(ctx context.Context, chatID int64) (*domain.ConversationSession, error) {
	session, err := s.Sessions.Get(ctx, chatID)
	if err != nil {
		s.Log.Error("failed to get session",
			"error", err,
			"chat_id", chatID,
		)
		return nil, domain.WrapBusinessError(err)
	}
	if session == nil {
		session = domain.NewSession(chatID)
	}
	return session, nil
}

// saveSession сохраняет сессию, ошибка не прерывает диалог
func (s *Service) saveSession(ctx context.Context, session *domain.ConversationSession) {
	session.UpdatedAt = time.Now()
	if err := s.Sessions.Set(ctx, session); err != nil {
		s.Log.Error("failed to save session",
			"error", err,
			"chat_id", session.ChatID,
		)
	}
}

// handleDateInput шаг AWAITING_DATE: дата рождения по солнечной хиджре
func (s *Service) handleDateInput(ctx context.Context, session *domain.ConversationSession, text string) error {
	year, month, day, err := jalali.ParseDate(text)
	if err != nil {
		s.Log.Debug("invalid birth date input",
			"chat_id", session.ChatID,
			"input_len", len(text),
		)
		return s.sendMessage(ctx, session.ChatID, texts.DateFormatError)
	}

	session.DateInput = text
	session.Year, session.Month, session.Day = year, month, day
	session.Step = domain.StepAwaitingTime
	s.saveSession(ctx, session)

	return s.sendMessage(ctx, session.ChatID, texts.DateAcceptedAskTime)
}

// handleTimeInput шаг AWAITING_TIME: локальное время рождения HH:MM
func (s *Service) handleTimeInput(ctx context.Context, session *domain.ConversationSession, text string) error {
	hour, minute, ok := parseClock(text)
	if !ok {
		return s.sendMessage(ctx, session.ChatID, texts.TimeFormatError)
	}

	session.TimeInput = text
	session.Hour, session.Minute = hour, minute
	session.Step = domain.StepAwaitingPlace
	s.saveSession(ctx, session)

	return s.sendMessage(ctx, session.ChatID, texts.TimeAcceptedAskCity)
}

// parseClock парсит время в формате HH:MM (24 часа)
func parseClock(text string) (hour, minute int, ok bool) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// handlePlaceInput шаг AWAITING_PLACE: город рождения, геокодинг и расчёт карты.
// Город не найден - остаёмся на шаге, введённые дата и время сохраняются.
func (s *Service) handlePlaceInput(ctx context.Context, botID domain.BotId, user *domain.User, session *domain.ConversationSession, text string, updateID int64) error {
	if err := s.sendMessage(ctx, session.ChatID, texts.SearchingCity); err != nil {
		return err
	}

	place, err := s.Geocoder.Resolve(ctx, text)
	if err != nil {
		s.Log.Warn("place not resolved",
			"chat_id", session.ChatID,
			"error", err,
		)
		return s.sendMessage(ctx, session.ChatID, texts.FormatPlaceNotFound(text))
	}

	return s.computeAndReply(ctx, botID, user, session, place, updateID)
}
