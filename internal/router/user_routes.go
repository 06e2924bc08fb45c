package router

import (
	feedbackhandler "leximind-server/internal/modules/feedback/handler"
	notehandler "leximind-server/internal/modules/note/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(protected *gin.RouterGroup, notes *notehandler.Handler, feedback *feedbackhandler.Handler) {
	protected.POST("/notes", notes.CreateNote)
	protected.GET("/notes", notes.ListNotes)
	protected.PUT("/notes/:id", notes.UpdateNote)
	protected.DELETE("/notes/:id", notes.DeleteNote)

	protected.POST("/feedback", feedback.SubmitFeedback)
}
