package employee

import (
	"github.com/STS-Engineer/rh-app-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", handler.GetAll)
		employees.GET("/archives", handler.GetArchives)
		employees.GET("/search", handler.Search)
		employees.GET("/:id", handler.GetByID)
		employees.POST("", handler.Create)
		employees.PUT("/:id", handler.Update)
		employees.PUT("/:id/archive", handler.Archive)
	}
}
