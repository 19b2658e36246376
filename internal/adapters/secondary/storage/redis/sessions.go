package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/admin/tg-bots/zayche-bot/internal/domain"
	"github.com/admin/tg-bots/zayche-bot/internal/ports/cache"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:chat:"
	sessionTTL       = 24 * time.Hour
)

// SessionStore хранит сессии диалога в Redis
// Реализует интерфейс cache.SessionStore
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) cache.SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, chatID)
}

// Get возвращает сессию чата, nil если сессии нет
func (s *SessionStore) Get(ctx context.Context, chatID int64) (*domain.ConversationSession, error) {
	raw, err := s.client.Get(ctx, sessionKey(chatID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get failed: %w", err)
	}

	var session domain.ConversationSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("session unmarshal failed: %w", err)
	}
	return &session, nil
}

// Set сохраняет сессию чата с продлением TTL
func (s *SessionStore) Set(ctx context.Context, session *domain.ConversationSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session marshal failed: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ChatID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("session set failed: %w", err)
	}
	return nil
}

// Clear удаляет сессию чата
func (s *SessionStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("session clear failed: %w", err)
	}
	return nil
}
