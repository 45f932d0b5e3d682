// Package api wires the HTTP surface: middleware, handlers and metrics.
package api

import (
	"net/http"
	"os"

	"bootcomp/internal/api/handlers"
	"bootcomp/internal/api/middleware"
	"bootcomp/internal/api/models"
	"bootcomp/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the shared services a router needs. Cache may be nil to disable
// GET /runs/:id. Registry defaults to a fresh registry.
type Deps struct {
	Cache    *data.RunCache
	Registry *prometheus.Registry
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Deps) *gin.Engine {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(reg)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(metrics.Handler())

	h := handlers.New(deps.Cache, metrics)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/compare", h.Compare)
		v1.POST("/rank", h.Rank)
		v1.POST("/select", h.Select)
		v1.POST("/describe", h.Describe)
		v1.GET("/runs/:id", h.GetRun)
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			router.Static("/ui", staticDir)
		}
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: models.CodeNotFound, Message: "route not found"},
		})
	})
	return router
}
