package di

import (
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/modules"
	"leximind-server/internal/modules/auth/oauth"
	blogrepo "leximind-server/internal/modules/blog/repo"
	feedbackrepo "leximind-server/internal/modules/feedback/repo"
	noterepo "leximind-server/internal/modules/note/repo"
	statsrepo "leximind-server/internal/modules/stats/repo"
	systemrepo "leximind-server/internal/modules/system/repo"
	userrepo "leximind-server/internal/modules/user/repo"
	"leximind-server/internal/platform/cache"
	"leximind-server/internal/platform/captcha"
	"leximind-server/internal/platform/events"
	"leximind-server/internal/platform/mail"
	"leximind-server/internal/platform/metrics"
	"leximind-server/internal/token"
)

func provideLocation(cfg config.ServerConfig) *time.Location {
	return cfg.Location()
}

func provideStores(
	users userrepo.UserStore,
	ledger statsrepo.LedgerStore,
	notes noterepo.NoteStore,
	posts blogrepo.PostStore,
	feedback feedbackrepo.FeedbackStore,
	system systemrepo.SystemStore,
) modules.Stores {
	return modules.Stores{
		User:     users,
		Ledger:   ledger,
		Note:     notes,
		Post:     posts,
		Feedback: feedback,
		System:   system,
	}
}

func providePlatform(
	issuer *token.Issuer,
	mailer mail.Sender,
	publisher events.Publisher,
	limiter *cache.IntervalLimiter,
	m *metrics.Metrics,
	provider oauth.Provider,
	captchaService *captcha.Service,
) modules.Platform {
	return modules.Platform{
		Issuer:    issuer,
		Mailer:    mailer,
		Publisher: publisher,
		Limiter:   limiter,
		Metrics:   m,
		Provider:  provider,
		Captcha:   captchaService,
	}
}
