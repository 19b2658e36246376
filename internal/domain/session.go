package domain

import "time"

// ConversationStep - шаг диалога опроса данных рождения
type ConversationStep string

const (
	StepStart         ConversationStep = "START"
	StepAwaitingDate  ConversationStep = "AWAITING_DATE"
	StepAwaitingTime  ConversationStep = "AWAITING_TIME"
	StepAwaitingPlace ConversationStep = "AWAITING_PLACE"
	StepAwaitingSigil ConversationStep = "AWAITING_SIGIL"
)

func (s ConversationStep) IsValid() bool {
	switch s {
	case StepStart, StepAwaitingDate, StepAwaitingTime, StepAwaitingPlace, StepAwaitingSigil:
		return true
	default:
		return false
	}
}

// ConversationSession - накопленное состояние опроса одного чата.
// Ключуется по chat_id, между пользователями не разделяется.
// Сбрасывается в START после успешного расчёта карты или по команде /start.
type ConversationSession struct {
	ChatID    int64            `json:"chat_id"`
	Step      ConversationStep `json:"step"`
	DateInput string           `json:"date_input,omitempty"` // 1370/01/01
	Year      int              `json:"year,omitempty"`
	Month     int              `json:"month,omitempty"`
	Day       int              `json:"day,omitempty"`
	TimeInput string           `json:"time_input,omitempty"` // 08:30
	Hour      int              `json:"hour,omitempty"`
	Minute    int              `json:"minute,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewSession создаёт сессию в начальном состоянии
func NewSession(chatID int64) *ConversationSession {
	return &ConversationSession{
		ChatID:    chatID,
		Step:      StepStart,
		UpdatedAt: time.Now(),
	}
}

// Reset возвращает сессию в START и очищает накопленные данные
func (s *ConversationSession) Reset() {
	s.Step = StepStart
	s.DateInput = ""
	s.Year, s.Month, s.Day = 0, 0, 0
	s.TimeInput = ""
	s.Hour, s.Minute = 0, 0
	s.UpdatedAt = time.Now()
}
