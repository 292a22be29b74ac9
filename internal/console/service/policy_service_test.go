package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atlasbridge/console/internal/domain"
	"github.com/atlasbridge/console/internal/infra"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubPolicyRepo — минимальное хранилище с инъекцией ошибок по операциям.
type stubPolicyRepo struct {
	stored    *domain.Policy
	createErr error
	updateErr error
	deleteOK  bool
	deleteErr error
}

func (r *stubPolicyRepo) GetAllPolicies(context.Context) ([]domain.Policy, error) {
	return nil, nil
}

func (r *stubPolicyRepo) GetPolicyByID(context.Context, string) (*domain.Policy, error) {
	return r.stored, nil
}

func (r *stubPolicyRepo) CreatePolicy(_ context.Context, in *domain.InsertPolicy, createdBy string) (*domain.Policy, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &domain.Policy{ID: "p1", Name: in.Name, CreatedBy: &createdBy}, nil
}

func (r *stubPolicyRepo) UpdatePolicy(context.Context, string, *domain.UpdatePolicy) (*domain.Policy, error) {
	return r.stored, r.updateErr
}

func (r *stubPolicyRepo) DeletePolicy(context.Context, string) (bool, error) {
	return r.deleteOK, r.deleteErr
}

type stubAuditWriter struct {
	entries []domain.InsertAuditLog
	err     error
}

func (w *stubAuditWriter) CreateAuditLog(_ context.Context, in *domain.InsertAuditLog) (*domain.AuditLog, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.entries = append(w.entries, *in)
	return &domain.AuditLog{ID: "a1", Action: in.Action}, nil
}

// countingPublisher фиксирует каждый вызов Publish вместо похода в Redis.
type countingPublisher struct {
	channels []string
	err      error
}

func (p *countingPublisher) Publish(_ context.Context, channel string, _ interface{}) *redis.IntCmd {
	p.channels = append(p.channels, channel)
	return redis.NewIntResult(1, p.err)
}

func TestPolicyMutationsPublishOneRefresh(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: "u1", Username: "ops"}
	repo := &stubPolicyRepo{
		stored:   &domain.Policy{ID: "p1", Name: "block-prod"},
		deleteOK: true,
	}
	pub := &countingPublisher{}
	svc := NewPolicyService(repo, &stubAuditWriter{}, pub, zap.NewNop())

	// Каждая успешная мутация — ровно один сигнал в канал обновлений
	_, err := svc.Create(ctx, &domain.InsertPolicy{Name: "block-prod"}, actor)
	require.NoError(t, err)
	require.Len(t, pub.channels, 1)

	enabled := false
	_, err = svc.Update(ctx, "p1", &domain.UpdatePolicy{Enabled: &enabled}, actor)
	require.NoError(t, err)
	require.Len(t, pub.channels, 2)

	require.NoError(t, svc.Delete(ctx, "p1", actor))
	require.Len(t, pub.channels, 3)

	for _, ch := range pub.channels {
		assert.Equal(t, infra.RedisChanPolicyUpdate, ch)
	}
}

func TestPolicyNoPublishOnRepoFailure(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: "u1", Username: "ops"}
	pub := &countingPublisher{}

	// Сбой вставки
	svc := NewPolicyService(&stubPolicyRepo{createErr: errors.New("insert failed")}, &stubAuditWriter{}, pub, zap.NewNop())
	_, err := svc.Create(ctx, &domain.InsertPolicy{Name: "p"}, actor)
	require.Error(t, err)

	// Политики нет: update и delete дают 404
	svc = NewPolicyService(&stubPolicyRepo{}, &stubAuditWriter{}, pub, zap.NewNop())
	enabled := true
	_, err = svc.Update(ctx, "missing", &domain.UpdatePolicy{Enabled: &enabled}, actor)
	require.Error(t, err)
	require.Error(t, svc.Delete(ctx, "missing", actor))

	assert.Empty(t, pub.channels)
}

func TestPolicyNoPublishOnAuditFailure(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: "u1", Username: "ops"}
	pub := &countingPublisher{}
	repo := &stubPolicyRepo{stored: &domain.Policy{ID: "p1", Name: "p"}, deleteOK: true}
	svc := NewPolicyService(repo, &stubAuditWriter{err: errors.New("audit down")}, pub, zap.NewNop())

	_, err := svc.Create(ctx, &domain.InsertPolicy{Name: "p"}, actor)
	require.Error(t, err)

	enabled := true
	_, err = svc.Update(ctx, "p1", &domain.UpdatePolicy{Enabled: &enabled}, actor)
	require.Error(t, err)

	require.Error(t, svc.Delete(ctx, "p1", actor))

	assert.Empty(t, pub.channels)
}

func TestPolicyPublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: "u1", Username: "ops"}
	pub := &countingPublisher{err: errors.New("connection reset")}
	svc := NewPolicyService(&stubPolicyRepo{}, &stubAuditWriter{}, pub, zap.NewNop())

	// Мутация уже в базе — сбой сигнала только логируется
	policy, err := svc.Create(ctx, &domain.InsertPolicy{Name: "p"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "p1", policy.ID)
	assert.Len(t, pub.channels, 1)
}

func TestPolicyNilPublisherDisablesSignaling(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: "u1", Username: "ops"}
	svc := NewPolicyService(&stubPolicyRepo{}, &stubAuditWriter{}, nil, zap.NewNop())

	_, err := svc.Create(ctx, &domain.InsertPolicy{Name: "p"}, actor)
	require.NoError(t, err)
}
