package service

import (
	"context"
	"fmt"

	"github.com/atlasbridge/console/internal/domain"
)

// DefaultAuditLimit — сколько записей журнала отдаем по умолчанию.
const DefaultAuditLimit = 100

// AuditLogProvider описывает контракт для чтения журнала аудита.
type AuditLogProvider interface {
	GetAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type AuditService struct {
	repo AuditLogProvider
}

func NewAuditService(repo AuditLogProvider) *AuditService {
	return &AuditService{repo: repo}
}

// List возвращает последние limit записей, newest-first. Журнал читается
// как есть: фильтрацию и экспорт клиент делает локально.
func (s *AuditService) List(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	logs, err := s.repo.GetAuditLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("audit_service: failed to fetch logs: %w", err)
	}
	return logs, nil
}
