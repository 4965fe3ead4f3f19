package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"commercehub/internal/application/factories/infrastructure"
	"commercehub/internal/config"
	"commercehub/internal/infrastructure/kafka"
	"commercehub/internal/infrastructure/postgres"
	"commercehub/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	// Metrics Server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("Notifier metrics listening on :9091")
		http.ListenAndServe(":9091", mux)
	}()

	infraFactory := infrastructure.NewFactory(cfg, logger)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	notificationRepo := postgres.NewNotificationRepository(pgPool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
	defer consumer.Close()

	notifier := worker.NewNotifier(consumer, notificationRepo, logger)

	logger.Info("Notifier started", "topic", cfg.Kafka.Topic, "group_id", cfg.Kafka.GroupID)
	if err := notifier.Run(ctx); err != nil {
		logger.Error("notifier stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Notifier exiting")
}
