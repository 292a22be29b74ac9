package postgres

import (
	"context"

	"github.com/atlasbridge/console/internal/domain"
)

// GetDashboardStats считает сводку одним запросом через COUNT FILTER.
// Это чистая производная текущих таблиц — отдельных счетчиков, которые
// можно рассинхронизировать, нет. На больших объемах нужен инкрементальный
// учет, для консоли с малым корпусом full scan приемлем.
func (r *Repo) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM policies),
			(SELECT COUNT(*) FILTER (WHERE enabled) FROM policies),
			(SELECT COUNT(*) FROM policy_runs),
			(SELECT COUNT(*) FILTER (WHERE decision = 'allow') FROM policy_runs),
			(SELECT COUNT(*) FILTER (WHERE decision = 'deny') FROM policy_runs),
			(SELECT COUNT(*) FILTER (WHERE decision = 'escalate') FROM policy_runs)`).
		Scan(
			&stats.TotalPolicies,
			&stats.ActivePolicies,
			&stats.TotalRuns,
			&stats.AllowedRuns,
			&stats.DeniedRuns,
			&stats.EscalatedRuns,
		)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
