package server

import (
	"net/http"

	"github.com/atlasbridge/console/internal/console/handler"
	"github.com/atlasbridge/console/internal/infra"
	"github.com/atlasbridge/console/internal/infra/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ConsoleServer struct {
	router   *chi.Mux
	logger   *zap.Logger
	cfg      *infra.Config
	metrics  *infra.Metrics
	gatherer prometheus.Gatherer

	// requireAuth-периметр для защищенных роутов
	guard *auth.Guard

	// Обработчики бизнес-доменов
	authHandler   *handler.AuthHandler      // /api/auth
	policyHandler *handler.PolicyHandler    // /api/policies
	runHandler    *handler.RunHandler       // /api/runs
	auditHandler  *handler.AuditHandler     // /api/audit-logs
	dashHandler   *handler.DashboardHandler // /api/dashboard
	docsHandler   *handler.DocsHandler      // /api/docs
}

// NewConsoleServer инициализирует сервер консоли со всеми зависимостями
func NewConsoleServer(
	cfg *infra.Config,
	logger *zap.Logger,
	metrics *infra.Metrics,
	gatherer prometheus.Gatherer,
	guard *auth.Guard,
	authH *handler.AuthHandler,
	policyH *handler.PolicyHandler,
	runH *handler.RunHandler,
	auditH *handler.AuditHandler,
	dashH *handler.DashboardHandler,
	docsH *handler.DocsHandler,
) *ConsoleServer {
	s := &ConsoleServer{
		router:        chi.NewRouter(),
		logger:        logger.Named("console-api"),
		cfg:           cfg,
		metrics:       metrics,
		gatherer:      gatherer,
		guard:         guard,
		authHandler:   authH,
		policyHandler: policyH,
		runHandler:    runH,
		auditHandler:  auditH,
		dashHandler:   dashH,
		docsHandler:   docsH,
	}

	s.routes()
	return s
}

func (s *ConsoleServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware (для всех) ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Кука — единственный кред браузерной консоли
	}))

	// --- 2. ПУБЛИЧНЫЕ РОУТЫ ---
	r.Group(func(r chi.Router) {
		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/register", s.authHandler.Register)
			r.Post("/login", s.authHandler.Login)
			r.Post("/logout", s.authHandler.Logout)
			r.Get("/me", s.authHandler.Me)
		})

		// Документация открыта, сессия не нужна
		r.Get("/api/docs", s.docsHandler.List)
		r.Get("/api/docs/{slug}", s.docsHandler.Get)

		// Healthcheck для мониторинга
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	})

	// --- 3. ЗАЩИЩЕННЫЙ ПЕРИМЕТР (сессионная кука или сервисный токен) ---
	r.Group(func(r chi.Router) {
		r.Use(s.guard.RequireAuth)

		// Dashboard & Stats
		r.Get("/api/dashboard/stats", s.dashHandler.GetStats)

		// Управление политиками
		r.Route("/api/policies", func(r chi.Router) {
			r.Get("/", s.policyHandler.List)
			r.Post("/", s.policyHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", s.policyHandler.Update)
				r.Delete("/", s.policyHandler.Delete)
			})
		})

		// Лента ранов (ingestion + чтение)
		r.Route("/api/runs", func(r chi.Router) {
			r.Get("/", s.runHandler.List)
			r.Post("/", s.runHandler.Create)
		})

		// Журнал аудита
		r.Get("/api/audit-logs", s.auditHandler.GetLogs)
	})
}

// ServeHTTP позволяет использовать ConsoleServer как стандартный http.Handler
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
