package app

import (
	"os"

	"github.com/STS-Engineer/rh-app-backend/internal/auth"
	"github.com/STS-Engineer/rh-app-backend/internal/demande"
	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	"github.com/STS-Engineer/rh-app-backend/internal/mailer"
	"github.com/STS-Engineer/rh-app-backend/internal/messaging/kafka"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/connection"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/storage"
	"github.com/STS-Engineer/rh-app-backend/internal/visa"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

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

	if err := gormDB.AutoMigrate(
		&auth.User{},
		&employee.Employee{},
		&demande.Demande{},
		&visa.VisaDossier{},
		&visa.VisaDocument{},
		&kafka.OutboxEventRow{},
	); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		// Redis only backs idempotency replay; the API stays usable
		// without it.
		logger.Warn("redis unavailable, idempotency disabled", zap.Error(err))
		rdb = nil
	}

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "uploads"
	}
	store, err := storage.NewDiskStore(storageDir, os.Getenv("PUBLIC_URL"))
	if err != nil {
		return err
	}

	mail, err := mailer.NewSMTPMailer()
	if err != nil {
		logger.Warn("smtp not configured, emails disabled", zap.Error(err))
		mail = mailer.NopMailer{}
	}

	return registerModules(router, db, gormDB, rdb, store, mail)
}
