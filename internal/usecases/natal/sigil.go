package natal

import (
	"context"
	"errors"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/usecases/natal/texts"
)

// startSigilInput переводит диалог в шаг ввода чисел для сиджиля
func (s *Service) startSigilInput(ctx context.Context, user *domain.User) error {
	session, err := s.getSession(ctx, user.TelegramChatID)
	if err != nil {
		return err
	}

	session.Reset()
	session.Step = domain.StepAwaitingSigil
	s.saveSession(ctx, session)

	return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.AskSigilNumbers, backToMainMenuKeyboard())
}

// handleSigilInput шаг AWAITING_SIGIL: числа через запятую.
// Невалидный ввод не сдвигает шаг, успешный отчёт сбрасывает сессию.
func (s *Service) handleSigilInput(ctx context.Context, session *domain.ConversationSession, text string) error {
	values, err := domain.ParseSigilValues(text)
	if err != nil {
		var inputErr *domain.SigilInputError
		switch {
		case errors.As(err, &inputErr):
			return s.sendMessage(ctx, session.ChatID, texts.FormatSigilInvalidItem(inputErr.Index, inputErr.Value))
		case errors.Is(err, domain.ErrSigilEmptyInput):
			return s.sendMessage(ctx, session.ChatID, texts.SigilEmptyError)
		default:
			return s.sendMessage(ctx, session.ChatID, texts.SigilFormatError)
		}
	}

	report := domain.BuildSigilReport(values)
	s.clearSession(ctx, session.ChatID)

	return s.sendMessageWithKeyboard(ctx, session.ChatID, texts.FormatSigilReport(report), servicesMenuKeyboard())
}
