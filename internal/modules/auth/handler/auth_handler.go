package handler

import (
	"net/http"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/modules/auth/dto"

	"github.com/gin-gonic/gin"
)

// Signup POST /auth/signup
func (h *Handler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if !h.verifyCaptcha(c, req.CaptchaFields) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error during signup")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RequestNewOTP POST /auth/request-new-otp
func (h *Handler) RequestNewOTP(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Email is required")
		return
	}
	if !h.verifyCaptcha(c, req.CaptchaFields) {
		return
	}

	resp, err := h.authService.RequestNewOTP(c.Request.Context(), req.Email)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error requesting new OTP")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyOTP POST /auth/verify-otp
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	resp, err := h.authService.VerifySignup(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error verifying OTP")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Signin POST /auth/signin
func (h *Handler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !h.verifyCaptcha(c, req.CaptchaFields) {
		return
	}

	resp, err := h.authService.Signin(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error during signin")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me GET /auth/me，需经过会话网关。
func (h *Handler) Me(c *gin.Context) {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.JSON(http.StatusOK, h.authService.Me(user))
}

// ForgetPassword POST /auth/ForgetPassword
func (h *Handler) ForgetPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Email is required")
		return
	}
	if !h.verifyCaptcha(c, req.CaptchaFields) {
		return
	}

	resp, err := h.authService.ForgetPassword(c.Request.Context(), req.Email)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error sending reset OTP")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyResetOTP POST /auth/verify-reset-otp
func (h *Handler) VerifyResetOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	resp, err := h.authService.VerifyResetOTP(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error verifying OTP")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPassword POST /auth/ResetPassword
func (h *Handler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Token and password are required")
		return
	}

	resp, err := h.authService.ResetPassword(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error resetting password")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout POST /api/logout。令牌是无状态的，由客户端丢弃。
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
