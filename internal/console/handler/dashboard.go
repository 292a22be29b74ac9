package handler

import (
	"context"
	"net/http"

	"github.com/atlasbridge/console/internal/domain"
	"go.uber.org/zap"
)

// StatsProvider Описываем, что нам нужно от сервиса
type StatsProvider interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

type DashboardHandler struct {
	service StatsProvider
	logger  *zap.Logger
}

func NewDashboardHandler(s StatsProvider, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: s,
		logger:  logger.Named("dashboard-handler"),
	}
}

// GetStats возвращает сводные счетчики политик и ранов.
// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
