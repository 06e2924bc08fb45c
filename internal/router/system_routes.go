package router

import (
	"net/http"

	systemhandler "leximind-server/internal/modules/system/handler"
	"leximind-server/internal/platform/metrics"

	"github.com/gin-gonic/gin"
)

func registerSystemRoutes(r *gin.Engine, h *systemhandler.Handler, m *metrics.Metrics) {
	r.GET("/healthz", h.Health)
	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if path := m.Path(); path != "" {
		r.GET(path, gin.WrapH(m.Handler()))
	}
}
