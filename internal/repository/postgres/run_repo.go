package postgres

import (
	"context"
	"fmt"

	"github.com/atlasbridge/console/internal/domain"
)

const runColumns = "id, policy_id, agent, command, decision, reason, duration, created_at"

// GetPolicyRuns возвращает последние limit ранов, newest-first.
func (r *Repo) GetPolicyRuns(ctx context.Context, limit int) ([]domain.PolicyRun, error) {
	query := `SELECT ` + runColumns + ` FROM policy_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.PolicyRun{}
	for rows.Next() {
		var run domain.PolicyRun
		if err := rows.Scan(
			&run.ID, &run.PolicyID, &run.Agent, &run.Command,
			&run.Decision, &run.Reason, &run.Duration, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, run)
	}
	return results, rows.Err()
}

// CreatePolicyRun фиксирует событие проверки. policy_id не проверяется
// на существование: шлюз вправе прислать ссылку на удаленную политику.
func (r *Repo) CreatePolicyRun(ctx context.Context, in *domain.InsertPolicyRun) (*domain.PolicyRun, error) {
	query := `
		INSERT INTO policy_runs (policy_id, agent, command, decision, reason, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + runColumns

	run := &domain.PolicyRun{}
	err := r.pool.QueryRow(ctx, query,
		in.PolicyID, in.Agent, in.Command, in.Decision, in.Reason, in.Duration,
	).Scan(
		&run.ID, &run.PolicyID, &run.Agent, &run.Command,
		&run.Decision, &run.Reason, &run.Duration, &run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create run: %w", err)
	}
	return run, nil
}
