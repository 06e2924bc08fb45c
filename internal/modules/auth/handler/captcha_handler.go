package handler

import (
	"net/http"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/modules/auth/dto"
	"leximind-server/internal/platform/captcha"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCaptcha GET /api/captcha，启用时同时返回一张新的图形验证码。
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.captcha.Enabled() {
		c.JSON(http.StatusOK, dto.CaptchaResponse{Provider: captcha.ProviderDisabled})
		return
	}

	id, image, err := h.captcha.Generate()
	if err != nil {
		zap.L().Error("❌ 验证码生成失败", zap.Error(err))
		httpx.WriteError(c, http.StatusInternalServerError, "Failed to generate captcha")
		return
	}
	c.JSON(http.StatusOK, dto.CaptchaResponse{
		Provider:     h.captcha.Provider(),
		CaptchaID:    id,
		CaptchaImage: image,
	})
}

// verifyCaptcha 校验失败时写入 400 并返回 false。
func (h *Handler) verifyCaptcha(c *gin.Context, fields dto.CaptchaFields) bool {
	if h.captcha.Verify(fields.CaptchaID, fields.CaptchaAnswer) {
		return true
	}
	httpx.WriteError(c, http.StatusBadRequest, "Invalid captcha")
	return false
}
