package visa

import (
	"github.com/STS-Engineer/rh-app-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the visa workflow. Every mutating or listing route
// requires a bearer token except the final dossier-pdf download.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	dossiers := r.Group("/visa-dossiers")
	dossiers.GET("/:id/dossier-pdf", handler.DossierPDF)
	dossiers.Use(middleware.AuthMiddleware())
	{
		if rdb != nil {
			dossiers.POST("", middleware.Idempotency(rdb), handler.CreateDossier)
		} else {
			dossiers.POST("", handler.CreateDossier)
		}
		dossiers.GET("", handler.GetAllDossiers)
		dossiers.GET("/:id", handler.GetDossierByID)
		dossiers.PATCH("/:id/status", handler.UpdateDossierStatus)
	}

	documents := r.Group("/visa-documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.POST("/:id/upload", handler.UploadDocument)
		documents.PATCH("/:id", handler.UpdateDocument)
	}

	generated := r.Group("")
	generated.Use(middleware.AuthMiddleware())
	{
		generated.POST("/attestation-travail", handler.GenerateAttestationTravail)
		generated.POST("/invitation-prise-en-charge", handler.GenerateInvitationPriseEnCharge)
		generated.POST("/ordre-mission", handler.GenerateOrdreMission)
	}

	emails := r.Group("/email")
	emails.Use(middleware.AuthMiddleware())
	{
		emails.POST("/assurance", handler.SendAssuranceEmail)
		emails.POST("/billet", handler.SendBilletEmail)
	}
}
