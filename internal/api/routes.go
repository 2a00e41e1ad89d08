package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes on the given router
func SetupRoutes(router *gin.Engine, handler *Handler, gatherer prometheus.Gatherer) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", handler.GetStatus)

		// Analyses of the newest test artifacts
		v1.GET("/report", handler.GetReport)
		v1.GET("/stability", handler.GetStability)
		v1.GET("/network", handler.GetNetwork)
		v1.GET("/summary", handler.GetSummary)
	}

	// Health check endpoint (outside versioned API)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
