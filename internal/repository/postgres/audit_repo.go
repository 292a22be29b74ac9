package postgres

/*
Файл audit_repo.go отвечает за журнал аудита (append-only).
Записи создаются синхронно после успешной основной операции —
никакого фонового батчинга, чтобы не терять события при рестарте.
*/

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atlasbridge/console/internal/domain"
)

const auditColumns = "id, action, actor, target, details, level, created_at"

func (r *Repo) GetAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.AuditLog{}
	for rows.Next() {
		var (
			entry   domain.AuditLog
			details []byte
		)
		if err := rows.Scan(
			&entry.ID, &entry.Action, &entry.Actor, &entry.Target,
			&details, &entry.Level, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if details != nil {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("postgres: corrupted audit details %s: %w", entry.ID, err)
			}
		}
		results = append(results, entry)
	}
	return results, rows.Err()
}

func (r *Repo) CreateAuditLog(ctx context.Context, in *domain.InsertAuditLog) (*domain.AuditLog, error) {
	level := in.Level
	if level == "" {
		level = domain.AuditLevelInfo
	}

	var details []byte
	if in.Details != nil {
		var err error
		if details, err = json.Marshal(in.Details); err != nil {
			return nil, fmt.Errorf("postgres: failed to marshal audit details: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (action, actor, target, details, level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	entry := &domain.AuditLog{
		Action:  in.Action,
		Actor:   in.Actor,
		Target:  in.Target,
		Details: in.Details,
		Level:   level,
	}
	err := r.pool.QueryRow(ctx, query, in.Action, in.Actor, in.Target, details, level).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create audit log: %w", err)
	}
	return entry, nil
}
