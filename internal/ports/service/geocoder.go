package service

import (
	"context"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
)

// IGeocoderService интерфейс резолвера мест.
// На "не найдено" и таймаут возвращает domain.ErrPlaceNotFound, не фатальную ошибку.
type IGeocoderService interface {
	Resolve(ctx context.Context, name string) (*domain.GeoPlace, error)
}
