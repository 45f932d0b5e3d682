package middleware

import (
	"log/slog"
	"net/http"

	"bootcomp/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers panics into an INTERNAL_ERROR response.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		msg := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			msg = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeInternal,
				Message: msg,
			},
		})
	})
}
