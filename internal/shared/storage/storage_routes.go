package storage

import (
	"net/http"

	"github.com/STS-Engineer/rh-app-backend/internal/shared/apperror"
	"github.com/STS-Engineer/rh-app-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes exposes stored artifacts by key. Read-only, no auth:
// keys are unguessable and the sandbox rejects traversal.
func RegisterRoutes(r *gin.Engine, store Store) {
	r.GET("/files/:filename", func(c *gin.Context) {
		path, err := store.Open(c.Param("filename"))
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
		c.Status(http.StatusOK)
		c.File(path)
	})
}
