// Package api exposes the deal analysis core over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flip-mcp/internal/config"
	"flip-mcp/internal/metrics"
)

// SetupRouter builds the gin engine serving the analysis API.
func SetupRouter(cfg *config.AppConfig) *gin.Engine {
	return setupRouter(NewHandler(cfg, time.Now))
}

func setupRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	if len(h.cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = h.cfg.CORSOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	if h.cfg.APIRateLimit > 0 {
		api.Use(rateLimit(h.cfg.APIRateLimit, h.cfg.APIRateBurst))
	}
	{
		api.GET("/defaults", h.GetDefaults)
		api.POST("/stats", h.ComputeStats)
		api.POST("/buckets", h.BuildBuckets)
		api.POST("/arv", h.ComputeArv)
		api.POST("/max-offer", h.CalculateMaxOffer)
		api.POST("/analyze", h.AnalyzeDeal)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
