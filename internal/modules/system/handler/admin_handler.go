package handler

import (
	"net/http"

	"leximind-server/internal/common/httpx"

	"github.com/gin-gonic/gin"
)

// GetOverview GET /api/admin/overview
func (h *Handler) GetOverview(c *gin.Context) {
	stats, err := h.systemService.AdminOverview(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching overview")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Health GET /healthz
func (h *Handler) Health(c *gin.Context) {
	resp, ok := h.systemService.Health(c.Request.Context())
	if !ok {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
