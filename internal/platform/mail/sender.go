package mail

import (
	"context"
	"time"

	"leximind-server/internal/config"

	"go.uber.org/zap"
)

// Sender 投递验证码与欢迎邮件。实现必须可并发调用。
type Sender interface {
	SendSignupOTP(ctx context.Context, to, username, code string, ttl time.Duration) error
	SendPasswordResetOTP(ctx context.Context, to, username, code string, ttl time.Duration) error
	SendWelcome(ctx context.Context, to, username string) error
}

// NewSender SMTP 未启用或未配置时返回只写日志的 NopSender。
func NewSender(cfg config.SMTPConfig, lg *zap.Logger) Sender {
	if !cfg.Enabled || cfg.Host == "" || cfg.From == "" {
		if lg != nil {
			lg.Warn("⚠️ SMTP 未启用，邮件将只写入日志")
		}
		return NewNopSender(lg)
	}
	return NewSMTPSender(cfg, lg)
}
