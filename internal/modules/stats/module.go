package stats

import (
	"leximind-server/internal/modules/stats/handler"
	"leximind-server/internal/modules/stats/repo"
	"leximind-server/internal/modules/stats/service"
	platformservice "leximind-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, ledgerStore repo.LedgerStore) *Module {
	moduleService := service.New(appService, ledgerStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
