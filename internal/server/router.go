// internal/server/router.go

// Package server exposes the HTTP trigger surface: the scheduled cron
// endpoint, the manual trigger, and the operational endpoints.
package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkedin-autoposter/internal/common/config"
	"linkedin-autoposter/internal/common/logger"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg *config.Config, runner WorkflowRunner, log logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		RequestLogging(log),
		gin.Recovery(),
	)

	h := NewHandlers(cfg, runner, log)

	api := r.Group("/api")
	api.GET("/cron", h.Cron)
	api.POST("/manual-post", h.ManualPost)

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Addr normalizes the listen address.
func Addr(port int) string {
	return fmt.Sprintf(":%d", port)
}
