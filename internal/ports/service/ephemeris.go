package service

import (
	"context"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
)

// IEphemerisService интерфейс эфемеридного движка.
// Наблюдение ГЕОЦЕНТРИЧЕСКОЕ, долгота в эклиптике даты - выбор зафиксирован,
// топоцентрическая поправка (до ~1° для Луны) сознательно не применяется.
type IEphemerisService interface {
	// Available false, если эфемеридные данные не загрузились при старте
	Available() bool
	// Observe возвращает эклиптическую долготу тела в градусах
	Observe(ctx context.Context, body domain.TrackedBody, moment domain.BirthMoment, place *domain.GeoPlace) (float64, error)
}
