package cache

import (
	"context"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
)

// SessionStore хранилище сессий опроса, ключ - chat_id.
// Глобальной мапы нет: бэкенд инжектится (in-memory для одного процесса,
// Redis для мультипроцессного деплоя).
type SessionStore interface {
	// Get возвращает сессию чата, nil если сессии нет
	Get(ctx context.Context, chatID int64) (*domain.ConversationSession, error)
	// Set сохраняет сессию
	Set(ctx context.Context, session *domain.ConversationSession) error
	// Clear сбрасывает сессию чата в начальное состояние
	Clear(ctx context.Context, chatID int64) error
}
