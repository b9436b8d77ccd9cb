package auth

import (
	"github.com/STS-Engineer/rh-app-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimitByIP(rate.Limit(2), 5))
	{
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/password-reset/request", handler.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", handler.ConfirmPasswordReset)
	}
}
