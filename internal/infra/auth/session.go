package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CookieName — имя сессионной куки консоли.
const CookieName = "atlasbridge_session"

// SessionStore — серверное хранилище сессий. Реализация в Postgres
// сама создает таблицу sessions при первом обращении.
type SessionStore interface {
	CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error
	// GetSession возвращает userID живой сессии или "" если токена нет
	// либо сессия протухла.
	GetSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

// SessionManager выдает и проверяет opaque-токены браузерных сессий.
// TTL абсолютный: через 24 часа после логина сессия умирает.
type SessionManager struct {
	store  SessionStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionManager(store SessionStore, ttl time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		store:  store,
		ttl:    ttl,
		logger: logger.Named("sessions"),
	}
}

// Issue создает сессию для пользователя и возвращает токен для куки.
func (m *SessionManager) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(m.ttl)

	if err := m.store.CreateSession(ctx, token, userID, expiresAt); err != nil {
		return "", fmt.Errorf("sessions: failed to create session: %w", err)
	}
	return token, nil
}

// Resolve возвращает userID по токену. Пустая строка — сессии нет.
func (m *SessionManager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	return m.store.GetSession(ctx, token)
}

// Revoke уничтожает сессию. Идемпотентен: отсутствие токена — не ошибка.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.DeleteSession(ctx, token); err != nil {
		// Logout должен быть безусловным, поэтому ошибку только логируем
		m.logger.Warn("session delete failed", zap.Error(err))
	}
	return nil
}

// Cookie собирает http-only сессионную куку.
// Secure не ставим: деплой за plain-HTTP (осознанный пробел харденинга).
func (m *SessionManager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie затирает куку на клиенте при logout.
func (m *SessionManager) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
