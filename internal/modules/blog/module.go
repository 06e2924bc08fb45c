package blog

import (
	"leximind-server/internal/modules/blog/handler"
	"leximind-server/internal/modules/blog/repo"
	"leximind-server/internal/modules/blog/service"
	platformservice "leximind-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, postStore repo.PostStore) *Module {
	moduleService := service.New(appService, postStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
