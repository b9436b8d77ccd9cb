package app

import (
	"database/sql"
	"os"
	"strings"

	"github.com/STS-Engineer/rh-app-backend/internal/auth"
	"github.com/STS-Engineer/rh-app-backend/internal/demande"
	"github.com/STS-Engineer/rh-app-backend/internal/employee"
	"github.com/STS-Engineer/rh-app-backend/internal/mailer"
	"github.com/STS-Engineer/rh-app-backend/internal/messaging/kafka"
	"github.com/STS-Engineer/rh-app-backend/internal/middleware"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/storage"
	"github.com/STS-Engineer/rh-app-backend/internal/visa"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	store storage.Store,
	mail mailer.Mailer,
) error {
	corsCfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsCfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "Idempotency-Key")
	router.Use(cors.New(corsCfg))
	router.Use(middleware.RequestID())

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	demandeRepo := demande.NewRepository(gormDB)
	visaRepo := visa.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo, mail)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	demandeService := demande.NewService(db, demandeRepo, employeeRepo)
	visaService := visa.NewServiceWithOutbox(db, visaRepo, employeeRepo, store, mail, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	demandeHandler := demande.NewHandler(demandeService)
	visaHandler := visa.NewHandlerWithRedis(visaService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		demande.RegisterRoutes(api, demandeHandler)
		visa.RegisterRoutes(api, visaHandler, rdb)
	}

	storage.RegisterRoutes(router, store)

	return nil
}
