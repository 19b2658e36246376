package natal

import (
	"context"
	"fmt"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/pkg/jalali"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/persistence"
	"github.com/admin/tg-bots/zayche-bot/internal/usecases/natal/texts"
	"github.com/google/uuid"
)

// computeAndReply финальный шаг опроса: конвертация времени, расчёт карты,
// ответ пользователю. Сессия сбрасывается после попытки расчёта - и при
// успехе, и при системной ошибке эфемериды.
func (s *Service) computeAndReply(ctx context.Context, botID domain.BotId, user *domain.User, session *domain.ConversationSession, place *domain.GeoPlace, updateID int64) error {
	moment, err := jalali.ToUTC(session.Year, session.Month, session.Day, session.Hour, session.Minute, place.Location())
	if err != nil {
		// Дата прошла валидацию на входе, сюда попадать не должны
		s.Log.Error("failed to convert birth moment",
			"error", err,
			"chat_id", session.ChatID,
		)
		session.Step = domain.StepAwaitingDate
		s.saveSession(ctx, session)
		return s.sendMessage(ctx, session.ChatID, texts.DateFormatError)
	}

	chart, err := s.BuildChart(ctx, moment, place)
	if err != nil {
		s.Log.Error("failed to build natal chart",
			"error", err,
			"chat_id", session.ChatID,
		)
		s.sendAlertOrLog(ctx, fmt.Sprintf("chart build failed [chat_id=%d]: %v", session.ChatID, err))
		s.clearSession(ctx, session.ChatID)
		return s.sendMessageWithKeyboard(ctx, session.ChatID, texts.ChartError, mainMenuKeyboard())
	}

	summary := texts.FormatChartSummary(chart, session.DateInput, session.TimeInput, place.Name)

	s.persistChart(ctx, botID, user, session, place, chart, updateID)
	s.clearSession(ctx, session.ChatID)

	return s.sendMessageWithKeyboard(ctx, session.ChatID, summary, mainMenuKeyboard())
}

// persistChart сохраняет данные рождения, карту и аудит-запись одной
// транзакцией: карта без аудит-записи (и наоборот) в базу не попадает.
// Ошибки персистентности не блокируют ответ пользователю.
func (s *Service) persistChart(ctx context.Context, botID domain.BotId, user *domain.User, session *domain.ConversationSession, place *domain.GeoPlace, chart *domain.NatalChartResult, updateID int64) {
	now := time.Now()

	civil := fmt.Sprintf("%s %s", session.DateInput, session.TimeInput)
	utc := chart.Moment.UTC
	user.BirthDateTime = &utc
	user.BirthDateCivil = &civil
	user.BirthPlace = &place.Name
	user.UpdatedAt = now

	raw, err := marshalChart(chart)
	if err != nil {
		s.Log.Error("failed to marshal chart",
			"error", err,
			"user_id", user.ID,
		)
		return
	}

	request := &domain.ChartRequest{
		ID:           uuid.New(),
		UserID:       user.ID,
		BotID:        botID,
		TGUpdateID:   &updateID,
		CivilDate:    session.DateInput,
		CivilTime:    session.TimeInput,
		PlaceName:    place.Name,
		SuccessCount: chart.SuccessCount(),
		CreatedAt:    now,
	}

	err = s.DB.WithTransaction(ctx, func(txCtx context.Context, tx persistence.Transaction) error {
		if err := s.UserRepo.UpdateTx(txCtx, tx, user); err != nil {
			return err
		}
		if err := s.UserRepo.SaveChartTx(txCtx, tx, user.ID, raw); err != nil {
			return err
		}
		return s.RequestRepo.CreateTx(txCtx, tx, request)
	})
	if err != nil {
		s.Log.Error("failed to persist chart",
			"error", err,
			"user_id", user.ID,
		)
		return
	}

	s.publishChartEvent(request.ID, raw)
}

// publishChartEvent отправляет событие в Kafka не блокируя ответ пользователю
func (s *Service) publishChartEvent(requestID uuid.UUID, chart domain.NatalChart) {
	if s.Producer == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.Producer.SendChartEvent(ctx, requestID, chart); err != nil {
			s.Log.Warn("failed to publish chart event",
				"error", err,
				"request_id", requestID,
			)
		}
	}()
}

// clearSession сбрасывает сессию чата
func (s *Service) clearSession(ctx context.Context, chatID int64) {
	if err := s.Sessions.Clear(ctx, chatID); err != nil {
		s.Log.Error("failed to clear session",
			"error", err,
			"chat_id", chatID,
		)
	}
}

// sendAlertOrLog отправляет алерт, не падает если алертер не настроен
func (s *Service) sendAlertOrLog(ctx context.Context, message string) {
	if s.AlerterService == nil {
		return
	}
	if err := s.AlerterService.SendAlert(ctx, message); err != nil {
		s.Log.Warn("failed to send alert (non-critical)",
			"error", err,
		)
	}
}
