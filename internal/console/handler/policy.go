package handler

import (
	"encoding/json"
	"net/http"

	"github.com/atlasbridge/console/internal/console/service"
	"github.com/atlasbridge/console/internal/domain"
	"github.com/atlasbridge/console/internal/infra/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PolicyHandler struct {
	service *service.PolicyService
	logger  *zap.Logger
}

func NewPolicyHandler(s *service.PolicyService, logger *zap.Logger) *PolicyHandler {
	return &PolicyHandler{
		service: s,
		logger:  logger.Named("policy-handler"),
	}
}

// List возвращает все политики для консоли, newest-first.
// GET /api/policies
func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, policies)
}

// Create создает новую политику от имени текущего пользователя.
// POST /api/policies
func (h *PolicyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.InsertPolicy
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid policy data")
		return
	}

	policy, err := h.service.Create(r.Context(), &in, auth.UserFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, policy)
}

// Update применяет частичный патч (обычно переключение enabled).
// PATCH /api/policies/{id}
func (h *PolicyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in domain.UpdatePolicy
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid policy data")
		return
	}

	policy, err := h.service.Update(r.Context(), id, &in, auth.UserFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, policy)
}

// Delete удаляет политику. Повторный вызов по тому же id — 404.
// DELETE /api/policies/{id}
func (h *PolicyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id, auth.UserFromContext(r.Context())); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Policy deleted")
}
