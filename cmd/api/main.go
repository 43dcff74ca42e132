package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/park-seva/helpcenter-service/internal/api/http"
	"github.com/park-seva/helpcenter-service/internal/api/http/handlers"
	"github.com/park-seva/helpcenter-service/internal/auth"
	"github.com/park-seva/helpcenter-service/internal/config"
	"github.com/park-seva/helpcenter-service/internal/domain"
	"github.com/park-seva/helpcenter-service/internal/events"
	"github.com/park-seva/helpcenter-service/internal/observability"
	"github.com/park-seva/helpcenter-service/internal/persistence"
	"github.com/park-seva/helpcenter-service/internal/repository"
	"github.com/park-seva/helpcenter-service/internal/responder"
	"github.com/park-seva/helpcenter-service/internal/service"
	"github.com/park-seva/helpcenter-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		pg    *persistence.Postgres
		redis *persistence.Redis
		store persistence.SnapshotStore
	)

	switch cfg.Store.Backend {
	case "redis":
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		store = persistence.NewRedisSnapshotStore(redis)
	case "memory":
		logger.Warn("memory store selected; data will not survive restarts")
		store = persistence.NewMemoryStore()
	default:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if pg.PoolHandle() == nil {
			logger.Warn("no postgres pool; falling back to memory store")
			store = persistence.NewMemoryStore()
		} else {
			if cfg.Postgres.RunMigrations {
				if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
					logger.Fatal("failed to run migrations", zap.Error(err))
				}
			}
			store = persistence.NewPostgresSnapshotStore(pg.PoolHandle())
		}
	}

	contact := domain.Contact{
		Name:  cfg.HelpCenter.SupportContactName,
		Phone: cfg.HelpCenter.SupportContactPhone,
	}

	ticketRepo := repository.NewTicketRepository(store, repository.TicketRepositoryOptions{
		EscalationWindow: cfg.HelpCenter.EscalationWindow(),
		Contact:          contact,
	})
	transcriptRepo := repository.NewTranscriptRepository(store)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	conversation := service.NewConversationService(service.ConversationDependencies{
		Transcript: transcriptRepo,
		Tickets:    ticketRepo,
		Responder:  responder.NewEngine(),
		CSAT:       service.NewCSATClient(cfg.HelpCenter.CSATEndpoint, logger),
		Dispatcher: dispatcher,
		Logger:     logger,
		Contact:    contact,
		ClearDelay: cfg.HelpCenter.TranscriptClearDelay(),
	})
	if err := conversation.Restore(ctx); err != nil {
		logger.Fatal("failed to restore transcript", zap.Error(err))
	}

	operator := service.NewOperatorService(ticketRepo, dispatcher, logger)

	authenticator, err := auth.NewOperatorAuthenticator(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init operator auth", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Store.Backend, pg, redis, metrics)
	chatHandler := handlers.NewChatHandler(conversation)
	operatorHandler := handlers.NewOperatorHandler(operator, authenticator)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             healthHandler,
		Chat:               chatHandler,
		Operator:           operatorHandler,
		OperatorMiddleware: auth.NewOperatorMiddleware(authenticator.TokenManager()),
	})

	poller, err := worker.NewPoller(conversation, cfg.HelpCenter, logger)
	if err != nil {
		logger.Fatal("failed to init pollers", zap.Error(err))
	}
	poller.Start()

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	poller.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
