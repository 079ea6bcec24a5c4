package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chocobean/storefront/internal/auth"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/dal/rabbitmq"
	categoryrepo "github.com/chocobean/storefront/internal/dal/repositories/category/postgres"
	messagerepo "github.com/chocobean/storefront/internal/dal/repositories/message/postgres"
	outboxrepo "github.com/chocobean/storefront/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/chocobean/storefront/internal/dal/repositories/product/postgres"
	userrepo "github.com/chocobean/storefront/internal/dal/repositories/user/postgres"
	"github.com/chocobean/storefront/internal/otel"
	"github.com/chocobean/storefront/internal/service/services/authsvc"
	"github.com/chocobean/storefront/internal/service/services/catalogsvc"
	"github.com/chocobean/storefront/internal/service/services/messagesvc"
	"github.com/chocobean/storefront/internal/service/services/ordersvc"
	"github.com/chocobean/storefront/internal/service/services/usersvc"
	httptransport "github.com/chocobean/storefront/internal/transport/http"
	"github.com/chocobean/storefront/internal/worker/outbox"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outbox.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	jwtManager := auth.NewJWTManager(
		os.Getenv("STOREFRONT_JWT_SECRET"),
		time.Duration(viper.GetInt("auth.token_expiry_hours"))*time.Hour,
	)

	pool := postgresClient.Pool()
	users := userrepo.NewPostgresUserRepository(pool)
	products := productrepo.NewPostgresProductRepository(pool)
	categories := categoryrepo.NewPostgresCategoryRepository(pool)
	messages := messagerepo.NewPostgresMessageRepository(pool)
	outboxMessages := outboxrepo.NewPostgresOutboxRepository(pool)

	authSvc := authsvc.MustNewAuthService(
		authsvc.WithUserRepository(users),
		authsvc.WithJWTManager(jwtManager),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithProductRepository(products),
		catalogsvc.WithCategoryRepository(categories),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithUserRepository(users),
	)
	messageSvc := messagesvc.MustNewMessageService(
		messagesvc.WithMessageRepository(messages),
	)

	transport := httptransport.NewHTTPTransport(
		jwtManager,
		authSvc,
		catalogSvc,
		orderSvc,
		userSvc,
		messageSvc,
	)
	transport.RegisterRoutes()

	outboxWorker := outbox.NewWorker(outboxMessages, rabbitClient)

	return &App{
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		outboxWorker:   outboxWorker,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()
	a.outboxWorker.Stop()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
