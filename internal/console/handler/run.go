package handler

import (
	"encoding/json"
	"net/http"

	"github.com/atlasbridge/console/internal/console/service"
	"github.com/atlasbridge/console/internal/domain"
	"go.uber.org/zap"
)

type RunHandler struct {
	service *service.RunService
	logger  *zap.Logger
}

func NewRunHandler(s *service.RunService, logger *zap.Logger) *RunHandler {
	return &RunHandler{
		service: s,
		logger:  logger.Named("run-handler"),
	}
}

// List возвращает последние раны, по умолчанию 50.
// GET /api/runs?limit=N
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := h.service.List(r.Context(), parseLimit(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, runs)
}

// Create принимает событие проверки от внешнего рантайма.
// POST /api/runs
func (h *RunHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.InsertPolicyRun
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid run data")
		return
	}

	run, err := h.service.Create(r.Context(), &in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}
