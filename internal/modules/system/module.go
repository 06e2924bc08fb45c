package system

import (
	"leximind-server/internal/modules/system/handler"
	"leximind-server/internal/modules/system/repo"
	"leximind-server/internal/modules/system/service"
	platformservice "leximind-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(
	appService *platformservice.AppService,
	systemStore repo.SystemStore,
	users service.Counter,
	notes service.Counter,
	posts service.Counter,
	feedback service.NewFeedbackCounter,
) *Module {
	moduleService := service.New(appService, systemStore, users, notes, posts, feedback)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
