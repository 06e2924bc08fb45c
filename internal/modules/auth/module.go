package auth

import (
	"leximind-server/internal/config"
	"leximind-server/internal/modules/auth/handler"
	"leximind-server/internal/modules/auth/oauth"
	"leximind-server/internal/modules/auth/repo"
	"leximind-server/internal/modules/auth/service"
	"leximind-server/internal/platform/captcha"
	"leximind-server/internal/platform/events"
	"leximind-server/internal/platform/mail"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/token"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

// Deps 认证模块依赖的平台能力，可选项允许为 nil。
type Deps struct {
	UserStore repo.UserStore
	Issuer    *token.Issuer
	Mailer    mail.Sender
	Publisher events.Publisher
	Recorder  service.LoginRecorder
	Limiter   service.ResendLimiter
	Observer  service.Observer
	Provider  oauth.Provider
	Captcha   *captcha.Service
}

func New(appService *platformservice.AppService, cfg *config.Config, deps Deps) *Module {
	moduleService := service.New(
		appService,
		deps.UserStore,
		deps.Issuer,
		deps.Mailer,
		deps.Publisher,
		deps.Recorder,
		deps.Limiter,
		deps.Observer,
		cfg.OTP,
	)
	secureCookie := cfg.Server.Mode == "release"
	moduleHandler := handler.New(moduleService, deps.Captcha, deps.Provider, cfg.Server.ClientURL, secureCookie)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
