package handlers

import (
	"net/http"

	"bootcomp/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRunID() string { return uuid.NewString() }

// GetRun handles GET /api/v1/runs/:id
func (h *Handler) GetRun(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeInvalidRequest,
				Message: "run id must be a UUID",
			},
		})
		return
	}
	v, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    models.CodeNotFound,
				Message: "run not found or expired",
				Details: map[string]interface{}{"id": id},
			},
		})
		return
	}
	c.JSON(http.StatusOK, v)
}
