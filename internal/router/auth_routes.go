package router

import (
	authhandler "leximind-server/internal/modules/auth/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(auth *gin.RouterGroup, authLimiter, gate gin.HandlerFunc, h *authhandler.Handler) {
	auth.POST("/signup", authLimiter, h.Signup)
	auth.POST("/request-new-otp", authLimiter, h.RequestNewOTP)
	auth.POST("/verify-otp", authLimiter, h.VerifyOTP)
	auth.POST("/signin", authLimiter, h.Signin)
	auth.POST("/ForgetPassword", authLimiter, h.ForgetPassword)
	auth.POST("/verify-reset-otp", authLimiter, h.VerifyResetOTP)
	auth.POST("/ResetPassword", authLimiter, h.ResetPassword)

	auth.GET("/me", gate, h.Me)

	auth.GET("/google", authLimiter, h.GoogleLogin)
	auth.GET("/google/callback", h.GoogleCallback)
}
