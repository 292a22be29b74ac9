package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlasbridge/console/internal/console/handler"
	"github.com/atlasbridge/console/internal/console/server"
	"github.com/atlasbridge/console/internal/console/service"
	"github.com/atlasbridge/console/internal/infra"
	"github.com/atlasbridge/console/internal/infra/auth"
	"github.com/atlasbridge/console/internal/repository/postgres"

	"github.com/avast/retry-go/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфигурация и логгер
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. PostgreSQL: пул создаем явно и прокидываем в репозиторий —
	// никакого ленивого глобального состояния
	pool, err := postgres.NewPool(appCtx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to create postgres pool", zap.Error(err))
	}
	defer pool.Close()

	repo := postgres.NewRepo(pool)

	// База может стартовать дольше нас — пингуем с ретраями.
	// Это единственные ретраи в процессе, в request path их нет.
	pingRetrier := retry.New(
		retry.Context(appCtx),
		retry.Attempts(5),
		retry.Delay(2*time.Second),
	)
	err = pingRetrier.Do(func() error {
		pingCtx, pingCancel := context.WithTimeout(appCtx, 5*time.Second)
		defer pingCancel()
		return repo.Ping(pingCtx)
	})
	if err != nil {
		logger.Fatal("database unreachable", zap.Error(err))
	}

	if err := repo.Migrate(appCtx, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// 3. Redis — опциональный сигналинг шлюзам; без него консоль работает.
	// В интерфейс кладем клиент только живой, иначе typed-nil обойдет
	// nil-проверку в сервисе
	var policyPub service.UpdatePublisher
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(appCtx).Err(); err != nil {
			logger.Warn("redis unreachable, policy update signaling disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			policyPub = rdb
		}
	}

	// 4. Метрики
	reg := prometheus.NewRegistry()
	metrics := infra.NewMetrics(reg)

	// 5. Аутентификация: сессии всегда, сервисные токены — по наличию ключа
	var validator auth.TokenValidator
	if len(cfg.Auth.PublicKey) > 0 {
		pubKey, err := auth.ParseRSAPublicKey(cfg.Auth.PublicKey)
		if err != nil {
			logger.Fatal("failed to parse service token public key", zap.Error(err))
		}
		validator = auth.NewBaseValidator(pubKey)
		logger.Info("service token auth enabled")
	}

	sessions := auth.NewSessionManager(repo, cfg.Auth.SessionTTL, logger)
	guard := auth.NewGuard(sessions, validator, repo, metrics, logger)

	// 6. Сборка слоев (Dependency Injection)
	authService := service.NewAuthService(repo, repo, sessions, cfg.Auth.BcryptCost, logger)
	policyService := service.NewPolicyService(repo, repo, policyPub, logger)
	runService := service.NewRunService(repo, repo, logger)
	auditService := service.NewAuditService(repo)
	dashService := service.NewDashboardService(repo)
	docsService := service.NewDocsService(cfg.Docs.Dir, logger)

	consoleSrv := server.NewConsoleServer(
		cfg, logger, metrics, reg, guard,
		handler.NewAuthHandler(authService, sessions, logger),
		handler.NewPolicyHandler(policyService, logger),
		handler.NewRunHandler(runService, logger),
		handler.NewAuditHandler(auditService, logger),
		handler.NewDashboardHandler(dashService, logger),
		handler.NewDocsHandler(docsService, logger),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      consoleSrv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 7. Запуск и Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("console API started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop // Ждем сигнал
	logger.Info("console API stopping...")

	// Даем 5 секунд на завершение запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("console API exited properly")
}
