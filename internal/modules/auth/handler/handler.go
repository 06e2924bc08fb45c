package handler

import (
	"leximind-server/internal/modules/auth/oauth"
	authservice "leximind-server/internal/modules/auth/service"
	"leximind-server/internal/platform/captcha"
)

type Handler struct {
	authService  *authservice.Service
	captcha      *captcha.Service
	provider     oauth.Provider
	clientURL    string
	secureCookie bool
}

// New provider 为 nil 时第三方登录入口返回 503；captchaService 为 nil 时不校验验证码。
func New(authService *authservice.Service, captchaService *captcha.Service, provider oauth.Provider, clientURL string, secureCookie bool) *Handler {
	return &Handler{
		authService:  authService,
		captcha:      captchaService,
		provider:     provider,
		clientURL:    clientURL,
		secureCookie: secureCookie,
	}
}
