package requestRepo

import (
	"context"
	"fmt"

	ports "github.com/admin/tg-bots/zayche-bot/internal/ports/repository"

	"log/slog"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/persistence"
	"github.com/google/uuid"
)

type requestColumns struct {
	TableName    string
	ID           string
	UserID       string
	BotID        string
	TGUpdateID   string
	CivilDate    string
	CivilTime    string
	PlaceName    string
	SuccessCount string
	CreatedAt    string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns requestColumns
}

// New создаёт новый репозиторий для аудита запросов расчёта карт
func New(db persistence.Persistence, log *slog.Logger) ports.IRequestRepo {
	cols := requestColumns{
		TableName:    "chart_requests",
		ID:           "id",
		UserID:       "user_id",
		BotID:        "bot_id",
		TGUpdateID:   "tg_update_id",
		CivilDate:    "civil_date",
		CivilTime:    "civil_time",
		PlaceName:    "place_name",
		SuccessCount: "success_count",
		CreatedAt:    "created_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.BotID,
		r.columns.TGUpdateID,
		r.columns.CivilDate,
		r.columns.CivilTime,
		r.columns.PlaceName,
		r.columns.SuccessCount,
		r.columns.CreatedAt)
}

// CreateTx создаёт аудит-запись расчёта карты в переданной транзакции:
// запись атомарна с сохранением карты пользователя
func (r *Repository) CreateTx(ctx context.Context, tx persistence.Transaction, request *domain.ChartRequest) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.columns.TableName,
		r.allColumns())
	err := tx.Exec(ctx, query,
		request.ID,
		request.UserID,
		request.BotID,
		request.TGUpdateID,
		request.CivilDate,
		request.CivilTime,
		request.PlaceName,
		request.SuccessCount,
		request.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create chart request",
			"error", err,
			"user_id", request.UserID,
			"request_id", request.ID)
		return fmt.Errorf("failed to create chart request: %w", err)
	}
	r.Log.Debug("chart request created successfully",
		"id", request.ID,
		"user_id", request.UserID)
	return nil
}

// CountByUser возвращает число расчётов пользователя
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		r.columns.TableName,
		r.columns.UserID)
	err := r.db.Get(ctx, &count, query, userID)
	if err != nil {
		r.Log.Error("failed to count chart requests",
			"error", err,
			"user_id", userID)
		return 0, fmt.Errorf("failed to count chart requests: %w", err)
	}
	return count, nil
}
