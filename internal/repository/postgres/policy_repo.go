package postgres

/*
Файл policy_repo.go отвечает за долговременное хранение политик.
Отдача — всегда newest-first: корпус политик маленький, пагинации нет.
*/

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atlasbridge/console/internal/domain"
	"github.com/jackc/pgx/v5"
)

const policyColumns = "id, name, description, rules, enforcement, enabled, created_by, created_at"

func scanPolicy(row pgx.Row) (*domain.Policy, error) {
	p := &domain.Policy{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Rules,
		&p.Enforcement, &p.Enabled, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // nil для 404 в сервисе
		}
		return nil, err
	}
	return p, nil
}

func (r *Repo) GetAllPolicies(ctx context.Context) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Policy{}
	for rows.Next() {
		var p domain.Policy
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Rules,
			&p.Enforcement, &p.Enabled, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func (r *Repo) GetPolicyByID(ctx context.Context, id string) (*domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1`
	return scanPolicy(r.pool.QueryRow(ctx, query, id))
}

func (r *Repo) CreatePolicy(ctx context.Context, in *domain.InsertPolicy, createdBy string) (*domain.Policy, error) {
	query := `
		INSERT INTO policies (name, description, rules, enforcement, enabled, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + policyColumns

	p, err := scanPolicy(r.pool.QueryRow(ctx, query,
		in.Name, in.Description, in.Rules, in.Enforcement, in.Enabled, createdBy,
	))
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create policy: %w", err)
	}
	return p, nil
}

// UpdatePolicy применяет частичный апдейт: SET собирается только из
// переданных полей. Конкурентные апдейты — last-write-wins.
func (r *Repo) UpdatePolicy(ctx context.Context, id string, in *domain.UpdatePolicy) (*domain.Policy, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Rules != nil {
		add("rules", in.Rules)
	}
	if in.Enforcement != nil {
		add("enforcement", *in.Enforcement)
	}
	if in.Enabled != nil {
		add("enabled", *in.Enabled)
	}

	// Пустой патч — просто вернуть текущее состояние (или nil для 404)
	if len(sets) == 0 {
		return r.GetPolicyByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE policies SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), policyColumns,
	)

	return scanPolicy(r.pool.QueryRow(ctx, query, args...))
}

// DeletePolicy возвращает false, если политики уже нет.
func (r *Repo) DeletePolicy(ctx context.Context, id string) (bool, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to delete policy: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
