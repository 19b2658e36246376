package repository

import (
	"context"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/persistence"
	"github.com/google/uuid"
)

// IRequestRepo интерфейс для аудита запросов расчёта карт
type IRequestRepo interface {
	CreateTx(ctx context.Context, tx persistence.Transaction, request *domain.ChartRequest) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
