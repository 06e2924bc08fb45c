package note

import (
	"leximind-server/internal/modules/note/handler"
	"leximind-server/internal/modules/note/repo"
	"leximind-server/internal/modules/note/service"
	platformservice "leximind-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, noteStore repo.NoteStore) *Module {
	moduleService := service.New(appService, noteStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
