package router

import (
	authhandler "leximind-server/internal/modules/auth/handler"
	bloghandler "leximind-server/internal/modules/blog/handler"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc, blog *bloghandler.Handler, auth *authhandler.Handler) {
	api.GET("/captcha", authLimiter, auth.GetCaptcha)

	api.GET("/blog-posts", blog.ListPublishedPosts)
	api.GET("/blog-posts/:id", blog.GetPublishedPost)

	// 令牌无状态，已过期的会话也允许登出
	api.POST("/logout", auth.Logout)
}
