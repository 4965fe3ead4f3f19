package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commercehub/internal/api"
	"commercehub/internal/application/factories/infrastructure"
	"commercehub/internal/config"
	"commercehub/internal/handler"
	"commercehub/internal/infrastructure/kafka"
	"commercehub/internal/infrastructure/postgres"
	redisInfra "commercehub/internal/infrastructure/redis"
	"commercehub/internal/notify"
	"commercehub/internal/webhook"
)

func main() {
	// Initialize structured JSON logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	infraFactory := infrastructure.NewFactory(cfg, logger)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	redisClient, err := infraFactory.Redis(ctx)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	// Notification pipeline
	producer := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()
	enqueuer := notify.NewKafkaEnqueuer(producer)

	// Domain storage
	orderRepo := postgres.NewOrderRepository(pgPool)
	merchantRepo := postgres.NewMerchantRepository(pgPool)
	accountRepo := postgres.NewAccountRepository(pgPool)
	payoutRepo := postgres.NewPayoutRepository(pgPool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pgPool)
	txManager := postgres.NewTxManager(pgPool)

	// Event handlers
	registry := webhook.NewRegistry()
	registry.Register("charge.succeeded", handler.NewChargeSucceeded(orderRepo, merchantRepo, enqueuer, logger))
	registry.Register("charge.failed", handler.NewChargeFailed(orderRepo, enqueuer, logger))
	registry.Register("charge.dispute.created", handler.NewDisputeCreated(enqueuer, logger))
	registry.Register("account.updated", handler.NewAccountUpdated(txManager, accountRepo, enqueuer, logger))
	registry.Register("payout.paid", handler.NewPayoutPaid(payoutRepo, logger))
	registry.Register("payout.failed", handler.NewPayoutFailed(payoutRepo, enqueuer, logger))
	registry.Register("transfer.updated", handler.NewTransferUpdated(payoutRepo, logger))
	subUpdated := handler.NewSubscriptionUpdated(subscriptionRepo, logger)
	registry.Register("customer.subscription.created", subUpdated)
	registry.Register("customer.subscription.updated", subUpdated)
	registry.Register("customer.subscription.deleted", handler.NewSubscriptionDeleted(subscriptionRepo, enqueuer, logger))

	// Processing engine
	verifier := webhook.NewVerifier(cfg.Webhook.Secret, cfg.Webhook.SignatureSkew)
	guard := webhook.NewGuard(redisInfra.NewKVStore(redisClient), cfg.Webhook.LockTTL, cfg.Webhook.DedupTTL, logger)
	engine := webhook.NewEngine(verifier, guard, registry, logger)

	handlers := api.NewHandlers(engine, logger)
	apiHandler := api.NewRouter(handlers)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: apiHandler,
	}

	go func() {
		logger.Info("Webhook server starting", "port", cfg.HTTP.Port, "event_types", registry.Types())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
