package mail

import (
	"context"
	"fmt"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/logger"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const sendTimeout = 15 * time.Second

// SMTPSender 通过 SMTP 发送邮件，每次发送建立一次连接。
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, lg *zap.Logger) *SMTPSender {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &SMTPSender{cfg: cfg, logger: lg}
}

func (s *SMTPSender) SendSignupOTP(ctx context.Context, to, username, code string, ttl time.Duration) error {
	return s.sendTemplate(ctx, to, signupOTPTemplate, templateData{Username: username, Code: code, Minutes: minutes(ttl)})
}

func (s *SMTPSender) SendPasswordResetOTP(ctx context.Context, to, username, code string, ttl time.Duration) error {
	return s.sendTemplate(ctx, to, resetOTPTemplate, templateData{Username: username, Code: code, Minutes: minutes(ttl)})
}

func (s *SMTPSender) SendWelcome(ctx context.Context, to, username string) error {
	return s.sendTemplate(ctx, to, welcomeTemplate, templateData{Username: username})
}

func (s *SMTPSender) sendTemplate(ctx context.Context, to string, tpl mailTemplate, data templateData) error {
	subject, text, html, err := tpl.render(data)
	if err != nil {
		return fmt.Errorf("render mail: %w", err)
	}
	msg, err := s.buildMessage(to, subject, text, html)
	if err != nil {
		return err
	}
	client, err := gomail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	s.logger.Info("📧 邮件已发送", zap.String("to", logger.MaskEmail(to)), zap.String("subject", subject))
	return nil
}

func (s *SMTPSender) buildMessage(to, subject, text, html string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, text)
	msg.AddAlternativeString(gomail.TypeTextHTML, html)
	return msg, nil
}

func (s *SMTPSender) clientOptions() []gomail.Option {
	opts := []gomail.Option{gomail.WithPort(s.cfg.Port)}

	// 465 端口使用隐式 TLS，其余端口强制 STARTTLS
	if s.cfg.SSL {
		opts = append(opts, gomail.WithSSL(), gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}
