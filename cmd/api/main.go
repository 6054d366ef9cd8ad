package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpdesk-kit/ticketing/internal/api/http"
	"github.com/helpdesk-kit/ticketing/internal/api/http/handlers"
	"github.com/helpdesk-kit/ticketing/internal/auth"
	"github.com/helpdesk-kit/ticketing/internal/config"
	"github.com/helpdesk-kit/ticketing/internal/events"
	"github.com/helpdesk-kit/ticketing/internal/observability"
	"github.com/helpdesk-kit/ticketing/internal/persistence"
	"github.com/helpdesk-kit/ticketing/internal/repository"
	"github.com/helpdesk-kit/ticketing/internal/service"
	"github.com/helpdesk-kit/ticketing/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	if cfg.Postgres.SeedData {
		if err := persistence.Seed(ctx, pg.PoolHandle(), cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed data", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	priorityRepo := repository.NewPriorityRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	historyRepo := repository.NewStatusHistoryRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	resolver := service.NewResolver(service.ResolverDependencies{
		UserRepo:          userRepo,
		CategoryRepo:      categoryRepo,
		PriorityRepo:      priorityRepo,
		StatusRepo:        statusRepo,
		DefaultStatusName: cfg.Ticketing.DefaultStatusName,
	})

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)
	eventMirror := events.NewRedisPublisher(redis.Client, cfg.Notification.EventChannel, logger)
	worker.StartEventMirror(eventMirror, dispatcher)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		HistoryRepo: historyRepo,
		Resolver:    resolver,
		Tx:          txRunner,
		Dispatcher:  dispatcher,
	})
	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo)
	statusService := service.NewStatusService(statusRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	priorityService := service.NewPriorityService(priorityRepo)
	commentService := service.NewCommentService(commentRepo, ticketRepo, resolver, dispatcher)
	attachmentService := service.NewAttachmentService(attachmentRepo, ticketRepo, resolver)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, metrics),
		Users:          handlers.NewUsersHandler(authService, userService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		Statuses:       handlers.NewStatusesHandler(statusService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Priorities:     handlers.NewPrioritiesHandler(priorityService),
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
