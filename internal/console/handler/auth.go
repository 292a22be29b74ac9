package handler

import (
	"encoding/json"
	"net/http"

	"github.com/atlasbridge/console/internal/console/service"
	"github.com/atlasbridge/console/internal/domain"
	"github.com/atlasbridge/console/internal/infra/auth"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service  *service.AuthService
	sessions *auth.SessionManager
	logger   *zap.Logger
}

func NewAuthHandler(s *service.AuthService, sessions *auth.SessionManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:  s,
		sessions: sessions,
		logger:   logger.Named("auth-handler"),
	}
}

// Register создает пользователя и сразу логинит его.
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, token, err := h.service.Register(r.Context(), creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	respondJSON(w, http.StatusOK, user.Public())
}

// Login проверяет креды и устанавливает сессионную куку.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, token, err := h.service.Login(r.Context(), creds)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	respondJSON(w, http.StatusOK, user.Public())
}

// Logout уничтожает сессию. Всегда 200, даже без куки.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.service.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, h.sessions.ExpiredCookie())
	respondMessage(w, http.StatusOK, "Logged out")
}

// Me возвращает текущего пользователя сессии.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.CookieName)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, uerr := h.service.CurrentUser(r.Context(), cookie.Value)
	if uerr != nil {
		respondError(w, h.logger, uerr)
		return
	}
	// Сессия могла протухнуть или указывать на удаленного пользователя
	if user == nil {
		respondMessage(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	respondJSON(w, http.StatusOK, user.Public())
}
