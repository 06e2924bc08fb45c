package handler

import (
	"net/http"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/modules/stats/dto"
	statsservice "leximind-server/internal/modules/stats/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	statsService *statsservice.Service
}

func New(statsService *statsservice.Service) *Handler {
	return &Handler{statsService: statsService}
}

// GetLoginStats 每日登录总数 GET /api/login-stats?startDate=&endDate=
func (h *Handler) GetLoginStats(c *gin.Context) {
	var q dto.RangeQuery
	_ = c.ShouldBindQuery(&q)

	start, end, err := h.statsService.ParseRange(q)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching login stats")
		return
	}
	rows, err := h.statsService.QueryRange(c.Request.Context(), start, end)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching login stats")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetUserLoginStats 区间内各用户登录次数 GET /api/user-login-stats?startDate=&endDate=
func (h *Handler) GetUserLoginStats(c *gin.Context) {
	var q dto.RangeQuery
	_ = c.ShouldBindQuery(&q)

	start, end, err := h.statsService.ParseRange(q)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching user login stats")
		return
	}
	rows, err := h.statsService.QueryUsers(c.Request.Context(), start, end)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching user login stats")
		return
	}
	c.JSON(http.StatusOK, rows)
}
