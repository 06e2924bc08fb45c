//go:build wireinject
// +build wireinject

package di

import (
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
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/router"
	"leximind-server/internal/token"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func InitializeApplication(cfg *config.Config, lg *zap.Logger, gormDB *gorm.DB) (*Application, error) {
	wire.Build(
		wire.FieldsOf(new(*config.Config), "Server", "JWT", "SMTP", "OAuth", "Redis", "Kafka", "Metrics", "Captcha"),
		provideLocation,
		platformservice.NewAppService,
		userrepo.NewUserRepository,
		statsrepo.NewLedgerRepository,
		noterepo.NewNoteRepository,
		blogrepo.NewPostRepository,
		feedbackrepo.NewFeedbackRepository,
		systemrepo.NewSystemRepository,
		provideStores,
		token.NewIssuer,
		mail.NewSender,
		events.NewPublisher,
		cache.NewRedisClient,
		cache.NewIntervalLimiter,
		metrics.New,
		oauth.NewGoogleProvider,
		captcha.New,
		providePlatform,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
