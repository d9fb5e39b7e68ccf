package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	httptransport "github.com/ShabiGardezi/crm-hunfa/internal/api/http"
	"github.com/ShabiGardezi/crm-hunfa/internal/api/http/handlers"
	"github.com/ShabiGardezi/crm-hunfa/internal/auth"
	"github.com/ShabiGardezi/crm-hunfa/internal/config"
	"github.com/ShabiGardezi/crm-hunfa/internal/events"
	"github.com/ShabiGardezi/crm-hunfa/internal/observability"
	"github.com/ShabiGardezi/crm-hunfa/internal/persistence"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	"github.com/ShabiGardezi/crm-hunfa/internal/routing"
	"github.com/ShabiGardezi/crm-hunfa/internal/service"
	"github.com/ShabiGardezi/crm-hunfa/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	pg := persistence.NewPostgres(cfg.Postgres, logger)
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	departmentRepo := repository.NewDepartmentRepository(pg)
	userRepo := repository.NewUserRepository(pg)
	ticketRepo := repository.NewTicketRepository(pg)
	historyRepo := repository.NewTicketHistoryRepository(pg)
	messageRepo := repository.NewTicketMessageRepository(pg)
	businessRepo := repository.NewBusinessRepository(pg)
	paymentRepo := repository.NewPaymentRepository(pg)
	inventoryRepo := repository.NewInventoryRepository(pg)
	activityRepo := repository.NewActivityRepository(pg)

	activityWorker := worker.NewActivityWorker(activityRepo, cfg.Activity.BufferSize, logger, metrics)
	go activityWorker.Run(ctx)

	publisher := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
	defer publisher.Close()
	var forwarder *worker.EventForwarder
	var forward service.Forwarder
	if publisher.Enabled() {
		forwarder = worker.NewEventForwarder(publisher, cfg.Activity.BufferSize, logger)
		forward = forwarder
		go forwarder.Run(ctx)
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewNotificationService(dispatcher, logger, forward).RegisterHandlers()

	guard := access.NewGuard(activityWorker)
	router := routing.NewRouter(departmentRepo)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	userService := service.NewUserService(userRepo, departmentRepo, guard, cfg.Auth.BcryptCost)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		HistoryRepo:    historyRepo,
		MessageRepo:    messageRepo,
		DepartmentRepo: departmentRepo,
		BusinessRepo:   businessRepo,
		Router:         router,
		Guard:          guard,
		Dispatcher:     dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:  ticketRepo,
		UserRepo:    userRepo,
		HistoryRepo: historyRepo,
		Guard:       guard,
		Dispatcher:  dispatcher,
	})
	businessService := service.NewBusinessService(businessRepo, guard, dispatcher)
	inventoryService := service.NewInventoryService(inventoryRepo, businessRepo, guard)
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		PaymentRepo:  paymentRepo,
		BusinessRepo: businessRepo,
		TicketRepo:   ticketRepo,
		UserRepo:     userRepo,
		Guard:        guard,
		Dispatcher:   dispatcher,
	})
	activityService := service.NewActivityService(activityRepo, guard)

	if err := userService.EnsureBootstrapAdmin(ctx, cfg.Bootstrap.AdminUser, cfg.Bootstrap.AdminPassword, logger); err != nil {
		logger.Error("bootstrap admin", zap.Error(err))
	}

	var redisPinger handlers.Pinger
	if redis.Client != nil {
		redisPinger = redis
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisPinger, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Tickets:        handlers.NewTicketsHandler(ticketService, assignmentService),
		Businesses:     handlers.NewBusinessesHandler(businessService),
		Inventory:      handlers.NewInventoryHandler(inventoryService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Activity:       handlers.NewActivityHandler(activityService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
		LoginLimiter:   httptransport.NewRateLimiter(redis.Client, "login", cfg.RateLimit.LoginPerMinute, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	<-activityWorker.Done()
	if forwarder != nil {
		<-forwarder.Done()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
