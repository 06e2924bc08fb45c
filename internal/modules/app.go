package modules

import (
	"leximind-server/internal/config"
	"leximind-server/internal/modules/auth"
	"leximind-server/internal/modules/auth/oauth"
	"leximind-server/internal/modules/blog"
	blogrepo "leximind-server/internal/modules/blog/repo"
	"leximind-server/internal/modules/feedback"
	feedbackrepo "leximind-server/internal/modules/feedback/repo"
	"leximind-server/internal/modules/note"
	noterepo "leximind-server/internal/modules/note/repo"
	"leximind-server/internal/modules/stats"
	statsrepo "leximind-server/internal/modules/stats/repo"
	"leximind-server/internal/modules/system"
	systemrepo "leximind-server/internal/modules/system/repo"
	"leximind-server/internal/modules/user"
	userrepo "leximind-server/internal/modules/user/repo"
	"leximind-server/internal/platform/cache"
	"leximind-server/internal/platform/captcha"
	"leximind-server/internal/platform/events"
	"leximind-server/internal/platform/mail"
	"leximind-server/internal/platform/metrics"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/token"
)

type AppModules struct {
	Auth     *auth.Module
	User     *user.Module
	Stats    *stats.Module
	Note     *note.Module
	Blog     *blog.Module
	Feedback *feedback.Module
	System   *system.Module
}

// Stores 各模块的持久化实现。
type Stores struct {
	User     userrepo.UserStore
	Ledger   statsrepo.LedgerStore
	Note     noterepo.NoteStore
	Post     blogrepo.PostStore
	Feedback feedbackrepo.FeedbackStore
	System   systemrepo.SystemStore
}

// Platform 跨模块共享的基础设施。
type Platform struct {
	Issuer    *token.Issuer
	Mailer    mail.Sender
	Publisher events.Publisher
	Limiter   *cache.IntervalLimiter
	Metrics   *metrics.Metrics
	Provider  oauth.Provider
	Captcha   *captcha.Service
}

func New(
	appService *platformservice.AppService,
	cfg *config.Config,
	stores Stores,
	platform Platform,
) *AppModules {
	userModule := user.New(appService, stores.User)
	statsModule := stats.New(appService, stores.Ledger)
	noteModule := note.New(appService, stores.Note)
	blogModule := blog.New(appService, stores.Post)
	feedbackModule := feedback.New(appService, stores.Feedback)

	authModule := auth.New(appService, cfg, auth.Deps{
		UserStore: stores.User,
		Issuer:    platform.Issuer,
		Mailer:    platform.Mailer,
		Publisher: platform.Publisher,
		Recorder:  statsModule.Service,
		Limiter:   platform.Limiter,
		Observer:  platform.Metrics,
		Provider:  platform.Provider,
		Captcha:   platform.Captcha,
	})

	systemModule := system.New(
		appService,
		stores.System,
		userModule.Service,
		noteModule.Service,
		blogModule.Service,
		feedbackModule.Service,
	)

	return &AppModules{
		Auth:     authModule,
		User:     userModule,
		Stats:    statsModule,
		Note:     noteModule,
		Blog:     blogModule,
		Feedback: feedbackModule,
		System:   systemModule,
	}
}
