package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Таблица сессий живет отдельно от миграций: хранилище создает ее само
// при первом обращении, как это делает connect-style session store.
const sessionsDDL = `
	CREATE TABLE IF NOT EXISTS sessions (
		token      VARCHAR PRIMARY KEY,
		user_id    VARCHAR NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

func (r *Repo) ensureSessions(ctx context.Context) error {
	r.sessOnce.Do(func() {
		_, r.sessErr = r.pool.Exec(ctx, sessionsDDL)
	})
	return r.sessErr
}

func (r *Repo) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	if err := r.ensureSessions(ctx); err != nil {
		return fmt.Errorf("postgres: failed to ensure sessions table: %w", err)
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to create session: %w", err)
	}
	return nil
}

// GetSession возвращает user_id живой сессии, "" — сессии нет.
// Протухшие строки удаляются на месте: TTL абсолютный, фоновая чистка не нужна.
func (r *Repo) GetSession(ctx context.Context, token string) (string, error) {
	if err := r.ensureSessions(ctx); err != nil {
		return "", err
	}

	var (
		userID    string
		expiresAt time.Time
	)
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, expires_at FROM sessions WHERE token = $1`, token,
	).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	if time.Now().After(expiresAt) {
		_, _ = r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
		return "", nil
	}
	return userID, nil
}

func (r *Repo) DeleteSession(ctx context.Context, token string) error {
	if err := r.ensureSessions(ctx); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
