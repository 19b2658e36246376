package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChartRequest - аудит-запись одного расчёта натальной карты
type ChartRequest struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	BotID        BotId     `json:"bot_id" db:"bot_id"`
	TGUpdateID   *int64    `json:"tg_update_id,omitempty" db:"tg_update_id"`
	CivilDate    string    `json:"civil_date" db:"civil_date"`
	CivilTime    string    `json:"civil_time" db:"civil_time"`
	PlaceName    string    `json:"place_name" db:"place_name"`
	SuccessCount int       `json:"success_count" db:"success_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
