package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/config"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/messaging/kafka"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/messaging/kafka/producer"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes the leave outbox to kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Kafka.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.Kafka.PollInterval,
		cfg.Kafka.BatchSize,
	)

	log.Info("worker shut down")
	return nil
}
