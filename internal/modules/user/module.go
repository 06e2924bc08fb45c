package user

import (
	"leximind-server/internal/modules/user/repo"
	"leximind-server/internal/modules/user/service"
	platformservice "leximind-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Store   repo.UserStore
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Module {
	return &Module{
		Service: service.New(appService, userStore),
		Store:   userStore,
	}
}
