package repository

import (
	"context"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/persistence"
	"github.com/google/uuid"
)

// IUserRepo интерфейс для работы с пользователями Telegram.
// Tx-варианты выполняются в переданной транзакции: сохранение карты
// атомарно с аудит-записью, управляет транзакцией вызывающий.
type IUserRepo interface {
	Create(ctx context.Context, user *domain.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error
	UpdateLastSeen(ctx context.Context, userID uuid.UUID) error
	SaveChartTx(ctx context.Context, tx persistence.Transaction, userID uuid.UUID, chart domain.NatalChart) error
	GetChart(ctx context.Context, userID uuid.UUID) (domain.NatalChart, error)
}
