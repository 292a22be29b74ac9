package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atlasbridge/console/internal/domain"
	"go.uber.org/zap"
)

// respondJSON сериализует ответ. Ошибки энкодинга после записи статуса
// чинить уже поздно — просто логируем выше по стеку через Recoverer.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// respondError мапит таксономию доменных ошибок на HTTP-статусы.
// Все неопознанное — generic 500 без утечки внутренних деталей.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		internalErr   *domain.InternalError
	)

	switch {
	case errors.As(err, &validationErr):
		respondMessage(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &authErr):
		respondMessage(w, http.StatusUnauthorized, authErr.Error())
	case errors.As(err, &notFoundErr):
		respondMessage(w, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		respondMessage(w, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &internalErr):
		respondMessage(w, http.StatusInternalServerError, internalErr.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parseLimit лояльно читает ?limit=N: мусор и отрицательные значения
// превращаются в 0, дефолт подставит сервис.
func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
