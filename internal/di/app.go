package di

import (
	"errors"

	"leximind-server/internal/modules"
	"leximind-server/internal/platform/events"
	"leximind-server/internal/router"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Application struct {
	Router    *router.Router
	Modules   *modules.AppModules
	Publisher events.Publisher
	Redis     *redis.Client
	Logger    *zap.Logger
}

func NewApplication(
	r *router.Router,
	appModules *modules.AppModules,
	publisher events.Publisher,
	redisClient *redis.Client,
	lg *zap.Logger,
) *Application {
	return &Application{
		Router:    r,
		Modules:   appModules,
		Publisher: publisher,
		Redis:     redisClient,
		Logger:    lg,
	}
}

// Close 释放路由后台任务、事件生产者与 Redis 连接。数据库由调用方关闭。
func (a *Application) Close() error {
	var errs []error
	if a.Router != nil {
		a.Router.Close()
	}
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
