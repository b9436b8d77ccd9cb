package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	"github.com/STS-Engineer/rh-app-backend/internal/mailer"
	"github.com/STS-Engineer/rh-app-backend/internal/messaging/kafka"
	"github.com/STS-Engineer/rh-app-backend/internal/messaging/kafka/producer"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker hosts the background loops: the outbox producer and the daily
// contract-end alert sweep.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	mail, err := mailer.NewSMTPMailer()
	if err != nil {
		logger.Warn("smtp not configured, alert emails disabled", zap.Error(err))
		mail = mailer.NopMailer{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if kafkaBroker := os.Getenv("KAFKA_BROKER"); kafkaBroker != "" {
		kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
		if err != nil {
			return err
		}
		defer kafkaWriter.Close()

		outboxRepo := kafka.NewOutboxRepository(sqlDB)
		go producer.ProcessOutboxEvents(
			ctx,
			outboxRepo,
			kafkaWriter,
			logger,
			3*time.Second,
		)
	} else {
		logger.Warn("KAFKA_BROKER not set, outbox producer disabled")
	}

	alertService := employee.NewContractAlertService(employee.NewRepository(gormDB), mail)
	go employee.RunContractAlertWorker(ctx, alertService, 24*time.Hour, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
