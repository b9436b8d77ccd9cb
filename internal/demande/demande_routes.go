package demande

import (
	"github.com/STS-Engineer/rh-app-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	demandes := r.Group("/demandes")
	demandes.Use(middleware.AuthMiddleware())
	{
		demandes.GET("", handler.GetAll)
		demandes.GET("/:id", handler.GetByID)
		demandes.POST("", handler.Create)
		demandes.PUT("/:id", handler.Update)
		demandes.PUT("/:id/statut", handler.UpdateStatut)
		demandes.DELETE("/:id", handler.Delete)
	}
}
