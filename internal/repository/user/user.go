package userRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ports "github.com/admin/tg-bots/zayche-bot/internal/ports/repository"

	"log/slog"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/persistence"
	"github.com/google/uuid"
)

type userColumns struct {
	TableName      string
	ID             string
	TelegramUserID string
	TelegramChatID string
	FirstName      string
	LastName       string
	Username       string
	BirthDateTime  string
	BirthDateCivil string
	BirthPlace     string
	NatalChart     string
	ChartBuiltAt   string
	CreatedAt      string
	UpdatedAt      string
	LastSeenAt     string
}

// rowExecer общая часть pg.DB и pg.Tx: запросы с числом затронутых строк
type rowExecer interface {
	ExecWithResult(ctx context.Context, query string, args ...interface{}) (int64, error)
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns userColumns
}

// New создаёт новый репозиторий для работы с пользователями
func New(db persistence.Persistence, log *slog.Logger) ports.IUserRepo {
	cols := userColumns{
		TableName:      "tg_users",
		ID:             "id",
		TelegramUserID: "tg_id",
		TelegramChatID: "chat_id",
		FirstName:      "first_name",
		LastName:       "last_name",
		Username:       "username",
		BirthDateTime:  "birth_datetime",
		BirthDateCivil: "birth_date_civil",
		BirthPlace:     "birth_place",
		NatalChart:     "natal_chart",
		ChartBuiltAt:   "chart_built_at",
		CreatedAt:      "created_at",
		UpdatedAt:      "updated_at",
		LastSeenAt:     "last_seen_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (14 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.TelegramUserID,
		r.columns.TelegramChatID,
		r.columns.FirstName,
		r.columns.LastName,
		r.columns.Username,
		r.columns.BirthDateTime,
		r.columns.BirthDateCivil,
		r.columns.BirthPlace,
		r.columns.NatalChart,
		r.columns.ChartBuiltAt,
		r.columns.CreatedAt,
		r.columns.UpdatedAt,
		r.columns.LastSeenAt)
}

// allColumnsExceptNatalChart возвращает строку со всеми колонками кроме natal_chart (13 колонок)
func (r *Repository) allColumnsExceptNatalChart() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.TelegramUserID,
		r.columns.TelegramChatID,
		r.columns.FirstName,
		r.columns.LastName,
		r.columns.Username,
		r.columns.BirthDateTime,
		r.columns.BirthDateCivil,
		r.columns.BirthPlace,
		r.columns.ChartBuiltAt,
		r.columns.CreatedAt,
		r.columns.UpdatedAt,
		r.columns.LastSeenAt)
}

// Create создаёт нового пользователя
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		user.ID,
		user.TelegramUserID,
		user.TelegramChatID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.BirthDateTime,
		user.BirthDateCivil,
		user.BirthPlace,
		user.NatalChart,
		user.ChartBuiltAt,
		user.CreatedAt,
		user.UpdatedAt,
		user.LastSeenAt)
	if err != nil {
		r.Log.Error("failed to create user",
			"error", err,
			"telegram_user_id", user.TelegramUserID,
			"user_id", user.ID)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.Log.Debug("user created successfully",
		"id", user.ID,
		"telegram_user_id", user.TelegramUserID)
	return nil
}

// GetByTelegramID получает пользователя по Telegram ID (без natal_chart для ленивой загрузки)
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumnsExceptNatalChart(),
		r.columns.TableName,
		r.columns.TelegramUserID)
	err := r.db.Get(ctx, &user, query, telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Debug("user not found", "telegram_user_id", telegramID)
			return nil, fmt.Errorf("user not found: %w", err)
		}
		r.Log.Error("failed to get user by telegram id",
			"error", err,
			"telegram_user_id", telegramID)
		return nil, fmt.Errorf("failed to get user by telegram id: %w", err)
	}
	r.Log.Debug("user retrieved successfully", "telegram_user_id", telegramID, "user_id", user.ID)
	return &user, nil
}

// GetByID получает пользователя по ID (без natal_chart для ленивой загрузки)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumnsExceptNatalChart(),
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user not found", "user_id", id)
			return nil, fmt.Errorf("user not found: %w", err)
		}
		r.Log.Error("failed to get user by id",
			"error", err,
			"user_id", id)
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	r.Log.Debug("user retrieved successfully", "user_id", id)
	return &user, nil
}

// Update обновляет пользователя
func (r *Repository) Update(ctx context.Context, user *domain.User) error {
	return r.update(ctx, r.db, user)
}

// UpdateTx обновляет пользователя в переданной транзакции
func (r *Repository) UpdateTx(ctx context.Context, tx persistence.Transaction, user *domain.User) error {
	return r.update(ctx, tx, user)
}

func (r *Repository) update(ctx context.Context, ex rowExecer, user *domain.User) error {
	query := fmt.Sprintf(`UPDATE %s SET
		%s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		%s = $7, %s = $8, %s = $9, %s = $10, %s = $11,
		%s = $12
		WHERE %s = $1`,
		r.columns.TableName,
		r.columns.TelegramUserID,
		r.columns.TelegramChatID,
		r.columns.FirstName,
		r.columns.LastName,
		r.columns.Username,
		r.columns.BirthDateTime,
		r.columns.BirthDateCivil,
		r.columns.BirthPlace,
		r.columns.ChartBuiltAt,
		r.columns.UpdatedAt,
		r.columns.LastSeenAt,
		r.columns.ID)
	rowsAffected, err := ex.ExecWithResult(ctx, query,
		user.ID,
		user.TelegramUserID,
		user.TelegramChatID,
		user.FirstName,
		user.LastName,
		user.Username,
		user.BirthDateTime,
		user.BirthDateCivil,
		user.BirthPlace,
		user.ChartBuiltAt,
		user.UpdatedAt,
		user.LastSeenAt)
	if err != nil {
		r.Log.Error("failed to update user",
			"error", err,
			"user_id", user.ID)
		return fmt.Errorf("failed to update user: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("user not found for update", "user_id", user.ID)
		return fmt.Errorf("user not found")
	}
	r.Log.Debug("user updated successfully", "user_id", user.ID, "rowsAffected", rowsAffected)
	return nil
}

// UpdateLastSeen обновляет время последней активности пользователя
func (r *Repository) UpdateLastSeen(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		r.columns.TableName,
		r.columns.LastSeenAt,
		r.columns.UpdatedAt,
		r.columns.ID)
	rowsAffected, err := r.db.ExecWithResult(ctx, query, now, now, userID)
	if err != nil {
		r.Log.Error("failed to update last seen",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("user not found for update last seen", "user_id", userID)
		return fmt.Errorf("user not found")
	}
	r.Log.Debug("last seen updated successfully", "user_id", userID)
	return nil
}

// SaveChartTx сохраняет рассчитанную натальную карту пользователя в транзакции
func (r *Repository) SaveChartTx(ctx context.Context, tx persistence.Transaction, userID uuid.UUID, chart domain.NatalChart) error {
	now := time.Now()
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4`,
		r.columns.TableName,
		r.columns.NatalChart,
		r.columns.ChartBuiltAt,
		r.columns.UpdatedAt,
		r.columns.ID)
	rowsAffected, err := tx.ExecWithResult(ctx, query, chart, now, now, userID)
	if err != nil {
		r.Log.Error("failed to save natal chart",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to save natal chart: %w", err)
	}
	if rowsAffected == 0 {
		r.Log.Warn("user not found for save chart", "user_id", userID)
		return fmt.Errorf("user not found")
	}
	r.Log.Debug("natal chart saved successfully", "user_id", userID)
	return nil
}

// GetChart загружает натальную карту пользователя, nil если карта ещё не рассчитана
func (r *Repository) GetChart(ctx context.Context, userID uuid.UUID) (domain.NatalChart, error) {
	var chart domain.NatalChart
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.columns.NatalChart,
		r.columns.TableName,
		r.columns.ID)
	err := r.db.Get(ctx, &chart, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("user not found for get chart", "user_id", userID)
			return nil, fmt.Errorf("user not found: %w", err)
		}
		r.Log.Error("failed to get natal chart",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get natal chart: %w", err)
	}
	return chart, nil
}
