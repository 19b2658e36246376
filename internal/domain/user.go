package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	TelegramUserID int64      `json:"telegram_user_id" db:"tg_id"`
	TelegramChatID int64      `json:"telegram_chat_id" db:"chat_id"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       *string    `json:"last_name,omitempty" db:"last_name"`
	Username       *string    `json:"username,omitempty" db:"username"`
	BirthDateTime  *time.Time `json:"birth_datetime,omitempty" db:"birth_datetime"`
	BirthDateCivil *string    `json:"birth_date_civil,omitempty" db:"birth_date_civil"`
	BirthPlace     *string    `json:"birth_place,omitempty" db:"birth_place"`
	NatalChart     NatalChart `json:"natal_chart,omitempty" db:"natal_chart"` // JSONB
	ChartBuiltAt   *time.Time `json:"chart_built_at,omitempty" db:"chart_built_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty" db:"last_seen_at"`
}
