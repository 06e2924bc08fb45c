package service

import (
	"context"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/logger"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/auth/repo"
	"leximind-server/internal/platform/events"
	"leximind-server/internal/platform/mail"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/token"

	"go.uber.org/zap"
)

// LoginRecorder 登录统计，失败不影响登录。
type LoginRecorder interface {
	RecordQuietly(ctx context.Context, email string, isAdmin bool)
}

// ResendLimiter 限制验证码的重发频率。
type ResendLimiter interface {
	Allow(ctx context.Context, scope, subject string, interval time.Duration) bool
	Reset(ctx context.Context, scope, subject string)
}

// Observer 认证相关的指标埋点。
type Observer interface {
	ObserveLogin(method string)
	ObserveOTP(purpose string)
}

type Service struct {
	*platformservice.AppService
	userStore repo.UserStore
	issuer    *token.Issuer
	mailer    mail.Sender
	publisher events.Publisher
	recorder  LoginRecorder
	limiter   ResendLimiter
	observer  Observer

	otpLength      int
	otpTTL         time.Duration
	resendInterval time.Duration
}

func New(
	appService *platformservice.AppService,
	userStore repo.UserStore,
	issuer *token.Issuer,
	mailer mail.Sender,
	publisher events.Publisher,
	recorder LoginRecorder,
	limiter ResendLimiter,
	observer Observer,
	otpCfg config.OTPConfig,
) *Service {
	length := otpCfg.Length
	if length < 4 || length > 10 {
		length = 6
	}
	ttl := time.Duration(otpCfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		AppService:     appService,
		userStore:      userStore,
		issuer:         issuer,
		mailer:         mailer,
		publisher:      publisher,
		recorder:       recorder,
		limiter:        limiter,
		observer:       observer,
		otpLength:      length,
		otpTTL:         ttl,
		resendInterval: time.Duration(otpCfg.ResendIntervalSeconds) * time.Second,
	}
}

// Issuer 供会话网关复用同一签发器。
func (s *Service) Issuer() *token.Issuer {
	return s.issuer
}

// completeLogin 记录统计与事件后签发登录令牌。
func (s *Service) completeLogin(ctx context.Context, user *model.User, method string) (string, time.Duration, error) {
	signed, ttl, err := s.issuer.Mint(user)
	if err != nil {
		return "", 0, platformservice.WrapInternal("Failed to generate token", err)
	}

	if s.recorder != nil {
		s.recorder.RecordQuietly(ctx, user.Email, user.IsAdmin)
	}
	if s.observer != nil {
		s.observer.ObserveLogin(method)
	}
	s.publish(ctx, events.Event{
		Type:     events.TypeUserLogin,
		UserID:   user.ID,
		Email:    user.Email,
		Metadata: map[string]string{"method": method},
	})
	return signed, ttl, nil
}

// publish 事件投递失败只写日志。
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.Clock().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.Log().Warn("⚠️ 事件发布失败", zap.String("type", event.Type), zap.Error(err))
	}
}

// sendWelcome 欢迎邮件发送失败只写日志。
func (s *Service) sendWelcome(ctx context.Context, user *model.User) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendWelcome(ctx, user.Email, user.Username); err != nil {
		s.Log().Warn("⚠️ 欢迎邮件发送失败", zap.String("email", logger.MaskEmail(user.Email)), zap.Error(err))
	}
}
