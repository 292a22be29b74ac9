package handler

import (
	"net/http"

	"github.com/atlasbridge/console/internal/console/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DocsHandler struct {
	service *service.DocsService
	logger  *zap.Logger
}

func NewDocsHandler(s *service.DocsService, logger *zap.Logger) *DocsHandler {
	return &DocsHandler{
		service: s,
		logger:  logger.Named("docs-handler"),
	}
}

// List возвращает slug+title доступных документов. Публичный эндпоинт.
// GET /api/docs
func (h *DocsHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.List())
}

// Get отдает сырой markdown одного документа.
// GET /api/docs/{slug}
func (h *DocsHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}
