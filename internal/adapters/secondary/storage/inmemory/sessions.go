package inmemory

import (
	"context"
	"sync"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/cache"
)

// SessionStore хранит сессии диалога в памяти процесса
// Используется когда Redis не сконфигурирован
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]domain.ConversationSession
}

func NewSessionStore() cache.SessionStore {
	return &SessionStore{
		sessions: make(map[int64]domain.ConversationSession),
	}
}

func (s *SessionStore) Get(_ context.Context, chatID int64) (*domain.ConversationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return nil, nil
	}
	copied := session
	return &copied, nil
}

func (s *SessionStore) Set(_ context.Context, session *domain.ConversationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ChatID] = *session
	return nil
}

func (s *SessionStore) Clear(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
	return nil
}
