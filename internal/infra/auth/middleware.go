package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atlasbridge/console/internal/domain"
	"github.com/atlasbridge/console/internal/infra"
	"go.uber.org/zap"
)

// UserSource резолвит id из сессии или токена в живого пользователя.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type ctxKey struct{}

// UserFromContext достает пользователя, положенного Guard'ом.
// nil — запрос прошел вне защищенного периметра.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(ctxKey{}).(*domain.User)
	return u
}

// Guard — requireAuth-периметр консоли. Порядок проверки:
// Bearer-токен CLI-рантайма (если настроен ключ), затем сессионная кука.
type Guard struct {
	sessions  *SessionManager
	validator TokenValidator // nil — bearer-аутентификация выключена
	users     UserSource
	metrics   *infra.Metrics
	logger    *zap.Logger
}

func NewGuard(sessions *SessionManager, validator TokenValidator, users UserSource, metrics *infra.Metrics, logger *zap.Logger) *Guard {
	return &Guard{
		sessions:  sessions,
		validator: validator,
		users:     users,
		metrics:   metrics,
		logger:    logger.Named("auth-guard"),
	}
}

// RequireAuth пропускает запрос дальше только с проверенным пользователем
// в контексте. Любой другой исход — 401 без уточнения причины.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.resolveUser(r)
		if err != nil {
			g.logger.Warn("auth failure", zap.Error(err))
		}
		if user == nil {
			g.reject(w)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Guard) resolveUser(r *http.Request) (*domain.User, error) {
	// 1. Сервисный токен (внешний CLI-рантайм)
	if header := r.Header.Get("Authorization"); header != "" && g.validator != nil {
		claims, err := g.validator.VerifyToken(header)
		if err != nil {
			return nil, err
		}
		return g.users.GetUserByID(r.Context(), claims.UserID)
	}

	// 2. Браузерная сессия
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil // Куки нет — обычный неавторизованный запрос
	}

	userID, err := g.sessions.Resolve(r.Context(), cookie.Value)
	if err != nil || userID == "" {
		return nil, err
	}

	// Сессия может указывать на уже удаленного пользователя — тогда 401
	return g.users.GetUserByID(r.Context(), userID)
}

func (g *Guard) reject(w http.ResponseWriter) {
	if g.metrics != nil {
		g.metrics.AuthFailures.Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Not authenticated"})
}
