package feedback

import (
	"leximind-server/internal/modules/feedback/handler"
	"leximind-server/internal/modules/feedback/repo"
	"leximind-server/internal/modules/feedback/service"
	platformservice "leximind-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, feedbackStore repo.FeedbackStore) *Module {
	moduleService := service.New(appService, feedbackStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
