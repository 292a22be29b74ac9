package service

import (
	"context"

	"github.com/atlasbridge/console/internal/domain"
	"github.com/atlasbridge/console/internal/infra"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PolicyRepository описывает требования сервиса к хранилищу политик
type PolicyRepository interface {
	GetAllPolicies(ctx context.Context) ([]domain.Policy, error)
	GetPolicyByID(ctx context.Context, id string) (*domain.Policy, error)
	CreatePolicy(ctx context.Context, in *domain.InsertPolicy, createdBy string) (*domain.Policy, error)
	UpdatePolicy(ctx context.Context, id string, in *domain.UpdatePolicy) (*domain.Policy, error)
	DeletePolicy(ctx context.Context, id string) (bool, error)
}

// UpdatePublisher шлет широковещательный сигнал шлюзам после мутации.
// Сигнатура совпадает с *redis.Client.Publish — клиент подходит без обертки.
type UpdatePublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type PolicyService struct {
	repo   PolicyRepository
	audit  AuditWriter
	pub    UpdatePublisher // nil — сигналинг шлюзам выключен
	logger *zap.Logger
}

func NewPolicyService(repo PolicyRepository, audit AuditWriter, pub UpdatePublisher, logger *zap.Logger) *PolicyService {
	return &PolicyService{
		repo:   repo,
		audit:  audit,
		pub:    pub,
		logger: logger.Named("policy-service"),
	}
}

// List возвращает все политики, newest-first.
func (s *PolicyService) List(ctx context.Context) ([]domain.Policy, error) {
	return s.repo.GetAllPolicies(ctx)
}

// Create сохраняет политику, пишет аудит и уведомляет шлюзы об обновлении.
func (s *PolicyService) Create(ctx context.Context, in *domain.InsertPolicy, actor *domain.User) (*domain.Policy, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	policy, err := s.repo.CreatePolicy(ctx, in, actor.ID)
	if err != nil {
		return nil, err
	}

	if _, err := s.audit.CreateAuditLog(ctx, &domain.InsertAuditLog{
		Action:  "policy.create",
		Actor:   actor.Username,
		Target:  &policy.ID,
		Details: map[string]any{"name": policy.Name},
		Level:   domain.AuditLevelInfo,
	}); err != nil {
		return nil, err
	}

	s.notifyUpdate(ctx)
	return policy, nil
}

// Update применяет частичный патч (обычно это переключение enabled).
func (s *PolicyService) Update(ctx context.Context, id string, in *domain.UpdatePolicy, actor *domain.User) (*domain.Policy, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	policy, err := s.repo.UpdatePolicy(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, domain.NewNotFoundError("Policy not found")
	}

	if _, err := s.audit.CreateAuditLog(ctx, &domain.InsertAuditLog{
		Action:  "policy.update",
		Actor:   actor.Username,
		Target:  &policy.ID,
		Details: map[string]any{"name": policy.Name},
		Level:   domain.AuditLevelInfo,
	}); err != nil {
		return nil, err
	}

	s.notifyUpdate(ctx)
	return policy, nil
}

// Delete удаляет политику. Удаление — warn-событие в аудите.
func (s *PolicyService) Delete(ctx context.Context, id string, actor *domain.User) error {
	deleted, err := s.repo.DeletePolicy(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewNotFoundError("Policy not found")
	}

	if _, err := s.audit.CreateAuditLog(ctx, &domain.InsertAuditLog{
		Action: "policy.delete",
		Actor:  actor.Username,
		Target: &id,
		Level:  domain.AuditLevelWarn,
	}); err != nil {
		return err
	}

	s.notifyUpdate(ctx)
	return nil
}

// notifyUpdate шлет широковещательный сигнал в Redis: шлюзы, подписанные
// на канал, перечитают весь набор политик. Сбой доставки не валит запрос —
// мутация уже зафиксирована в базе.
func (s *PolicyService) notifyUpdate(ctx context.Context) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, infra.RedisChanPolicyUpdate, "refresh").Err(); err != nil {
		s.logger.Warn("policy update signal delivery failed", zap.Error(err))
	}
}
