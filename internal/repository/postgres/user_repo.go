package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/atlasbridge/console/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *Repo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, username, password, role FROM users WHERE id = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Password, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *Repo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password, role FROM users WHERE username = $1`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Password, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// CreateUser создает пользователя с ролью по умолчанию.
// Гонку двух регистраций с одним username разрешает unique-констрейнт:
// проигравший получает ConflictError.
func (r *Repo) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password, role`

	u := &domain.User{}
	err := r.pool.QueryRow(ctx, query, username, passwordHash).Scan(&u.ID, &u.Username, &u.Password, &u.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.NewConflictError("Username already exists")
		}
		return nil, fmt.Errorf("postgres: failed to create user: %w", err)
	}
	return u, nil
}
