package mail

import (
	"context"
	"time"

	"leximind-server/internal/logger"

	"go.uber.org/zap"
)

// NopSender 不发送邮件，只记录日志。验证码仅在 debug 级别输出，方便本地开发。
type NopSender struct {
	logger *zap.Logger
}

func NewNopSender(lg *zap.Logger) *NopSender {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &NopSender{logger: lg}
}

func (s *NopSender) SendSignupOTP(_ context.Context, to, _ string, code string, ttl time.Duration) error {
	s.logger.Debug("📧 [mail disabled] signup otp", zap.String("to", logger.MaskEmail(to)), zap.String("code", code), zap.Duration("ttl", ttl))
	return nil
}

func (s *NopSender) SendPasswordResetOTP(_ context.Context, to, _ string, code string, ttl time.Duration) error {
	s.logger.Debug("📧 [mail disabled] reset otp", zap.String("to", logger.MaskEmail(to)), zap.String("code", code), zap.Duration("ttl", ttl))
	return nil
}

func (s *NopSender) SendWelcome(_ context.Context, to, _ string) error {
	s.logger.Debug("📧 [mail disabled] welcome", zap.String("to", logger.MaskEmail(to)))
	return nil
}
