package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/triage-service/internal/api/http"
	"github.com/spec-kit/triage-service/internal/api/http/handlers"
	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/classifier"
	"github.com/spec-kit/triage-service/internal/config"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/observability"
	"github.com/spec-kit/triage-service/internal/persistence"
	"github.com/spec-kit/triage-service/internal/repository"
	"github.com/spec-kit/triage-service/internal/seed"
	"github.com/spec-kit/triage-service/internal/service"
	"github.com/spec-kit/triage-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	ticketRepo, routingLogRepo, notificationRepo := buildRepositories(cfg, pg, logger)

	dispatcher := events.NewInMemoryDispatcher()
	if redis.Enabled() {
		events.NewRedisMirror(redis.Client, cfg.Redis.EventChannel, logger).Register(dispatcher)
	}

	triageService := service.NewTriageService(service.TriageDependencies{
		TicketRepo:     ticketRepo,
		RoutingLogRepo: routingLogRepo,
		Classifier:     classifier.NewKeywordClassifier(cfg.Classifier.Delay()),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	analyticsService := service.NewAnalyticsService(ticketRepo, routingLogRepo, notificationRepo, nil)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init auth", zap.Error(err))
	}
	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(triageService),
		Classify:       handlers.NewClassifyHandler(triageService),
		Dashboard:      handlers.NewDashboardHandler(analyticsService),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildRepositories selects the durable store when a DSN is configured,
// otherwise the in-memory store seeded with a demo batch.
func buildRepositories(cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (repository.TicketRepository, repository.RoutingLogRepository, repository.NotificationRepository) {
	if pg.Enabled() {
		return repository.NewPostgresTicketRepository(pg.Pool, nil),
			repository.NewPostgresRoutingLogRepository(pg.Pool),
			repository.NewPostgresNotificationRepository(pg.Pool)
	}

	var data seed.Data
	if cfg.Seed.Enabled && cfg.Seed.Count > 0 {
		now := time.Now()
		data = seed.Generate(cfg.Seed.Count, now, rand.New(rand.NewSource(now.UnixNano())))
		logger.Info("seeded in-memory store",
			zap.Int("tickets", len(data.Tickets)),
			zap.Int("routing_logs", len(data.RoutingLogs)),
			zap.Int("notifications", len(data.Notifications)))
	}
	return repository.NewMemoryTicketRepository(nil, data.Tickets),
		repository.NewMemoryRoutingLogRepository(data.RoutingLogs),
		repository.NewMemoryNotificationRepository(data.Notifications)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
