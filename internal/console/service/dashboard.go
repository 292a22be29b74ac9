package service

import (
	"context"

	"github.com/atlasbridge/console/internal/domain"
)

// StatsRepository описывает требования дашборда к хранилищу
type StatsRepository interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

type DashboardService struct {
	repo StatsRepository
}

func NewDashboardService(repo StatsRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.repo.GetDashboardStats(ctx)
}
