package service

import (
	"context"

	"github.com/atlasbridge/console/internal/domain"
	"go.uber.org/zap"
)

// DefaultRunLimit — сколько ранов отдаем, если limit не задан.
const DefaultRunLimit = 50

// RunRepository описывает требования к хранилищу ранов
type RunRepository interface {
	GetPolicyRuns(ctx context.Context, limit int) ([]domain.PolicyRun, error)
	CreatePolicyRun(ctx context.Context, in *domain.InsertPolicyRun) (*domain.PolicyRun, error)
}

type RunService struct {
	repo   RunRepository
	audit  AuditWriter
	logger *zap.Logger
}

func NewRunService(repo RunRepository, audit AuditWriter, logger *zap.Logger) *RunService {
	return &RunService{
		repo:   repo,
		audit:  audit,
		logger: logger.Named("run-service"),
	}
}

func (s *RunService) List(ctx context.Context, limit int) ([]domain.PolicyRun, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}
	return s.repo.GetPolicyRuns(ctx, limit)
}

// Create фиксирует событие проверки от внешнего рантайма.
// Единственный ingestion-эндпоинт: без дедупликации, порядок — порядок вставки.
func (s *RunService) Create(ctx context.Context, in *domain.InsertPolicyRun) (*domain.PolicyRun, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	run, err := s.repo.CreatePolicyRun(ctx, in)
	if err != nil {
		return nil, err
	}

	// Имя события аудита несет решение: policy.run.allow / .deny / .escalate,
	// deny поднимает уровень до warn
	if _, err := s.audit.CreateAuditLog(ctx, &domain.InsertAuditLog{
		Action: "policy.run." + string(run.Decision),
		Actor:  run.Agent,
		Target: run.PolicyID,
		Details: map[string]any{
			"command":  run.Command,
			"decision": string(run.Decision),
		},
		Level: domain.RunAuditLevel(run.Decision),
	}); err != nil {
		return nil, err
	}

	return run, nil
}
