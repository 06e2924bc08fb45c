package router

import (
	bloghandler "leximind-server/internal/modules/blog/handler"
	feedbackhandler "leximind-server/internal/modules/feedback/handler"
	statshandler "leximind-server/internal/modules/stats/handler"
	systemhandler "leximind-server/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

type adminHandlers struct {
	blog     *bloghandler.Handler
	feedback *feedbackhandler.Handler
	stats    *statshandler.Handler
	system   *systemhandler.Handler
}

func registerAdminRoutes(admin *gin.RouterGroup, h adminHandlers) {
	admin.GET("/admin/overview", h.system.GetOverview)

	admin.GET("/login-stats", h.stats.GetLoginStats)
	admin.GET("/user-login-stats", h.stats.GetUserLoginStats)

	admin.POST("/blog-posts", h.blog.CreatePost)
	admin.GET("/blog-posts/admin", h.blog.AdminListPosts)
	admin.GET("/blog-posts/admin/:id", h.blog.AdminGetPost)
	admin.PUT("/blog-posts/:id", h.blog.UpdatePost)
	admin.DELETE("/blog-posts/:id", h.blog.DeletePost)

	admin.GET("/feedback", h.feedback.ListFeedback)
	admin.GET("/feedback/new-count", h.feedback.NewCount)
	admin.PUT("/feedback/:id/bookmark", h.feedback.ToggleBookmark)
	admin.DELETE("/feedback/:id", h.feedback.DeleteFeedback)
}
