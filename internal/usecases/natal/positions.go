package natal

import (
	"context"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/usecases/natal/texts"
)

const (
	positionsCacheKey = "zayche:positions:daily"
	positionsCacheTTL = 25 * time.Hour
)

// referencePlace точка наблюдения для дневных позиций.
// Наблюдение геоцентрическое, так что важен только часовой пояс.
func referencePlace() *domain.GeoPlace {
	return &domain.GeoPlace{
		Name:      "تهران",
		Latitude:  35.6892,
		Longitude: 51.3890,
		TimeZone:  "Asia/Tehran",
	}
}

// handleDailyPositions отвечает на SERVICES|ASTRO|DAILY: позиции тел на сегодня.
// Сначала пробуем кеш, на промахе считаем на лету.
func (s *Service) handleDailyPositions(ctx context.Context, user *domain.User) error {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, positionsCacheKey); err == nil && cached != "" {
			return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, cached, astrologyMenuKeyboard())
		}
	}

	message, err := s.computeDailyPositions(ctx, time.Now())
	if err != nil {
		s.Log.Error("failed to compute daily positions",
			"error", err,
			"chat_id", user.TelegramChatID,
		)
		return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, texts.DailyUnavailable, astrologyMenuKeyboard())
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, positionsCacheKey, message, positionsCacheTTL); err != nil {
			s.Log.Warn("failed to cache daily positions", "error", err)
		}
	}

	return s.sendMessageWithKeyboard(ctx, user.TelegramChatID, message, astrologyMenuKeyboard())
}

// UpdateCachedPositions пересчитывает дневные позиции и кладёт их в кеш.
// Вызывается планировщиком раз в сутки.
func (s *Service) UpdateCachedPositions(ctx context.Context, now time.Time) error {
	if s.Cache == nil {
		s.Log.Warn("cache is not configured, skipping positions update")
		return nil
	}

	message, err := s.computeDailyPositions(ctx, now)
	if err != nil {
		return err
	}

	return s.Cache.Set(ctx, positionsCacheKey, message, positionsCacheTTL)
}

func (s *Service) computeDailyPositions(ctx context.Context, now time.Time) (string, error) {
	moment := domain.BirthMoment{UTC: now.UTC()}

	chart, err := s.BuildChart(ctx, moment, referencePlace())
	if err != nil {
		return "", err
	}

	return texts.FormatDailyPositions(chart), nil
}
