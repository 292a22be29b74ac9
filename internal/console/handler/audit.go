package handler

import (
	"net/http"

	"github.com/atlasbridge/console/internal/console/service"
	"go.uber.org/zap"
)

type AuditHandler struct {
	service *service.AuditService
	logger  *zap.Logger
}

func NewAuditHandler(s *service.AuditService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		service: s,
		logger:  logger.Named("audit-handler"),
	}
}

// GetLogs возвращает последние записи журнала, по умолчанию 100.
// GET /api/audit-logs?limit=N
func (h *AuditHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.List(r.Context(), parseLimit(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, logs)
}
