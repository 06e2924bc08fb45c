package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"leximind-server/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSender_FallsBackToNop(t *testing.T) {
	_, ok := NewSender(config.SMTPConfig{Enabled: false, Host: "smtp.example.com", From: "a@b.c"}, nil).(*NopSender)
	assert.True(t, ok, "未启用 SMTP 时应返回 NopSender")

	_, ok = NewSender(config.SMTPConfig{Enabled: true}, nil).(*NopSender)
	assert.True(t, ok, "缺少 host 时应返回 NopSender")

	_, ok = NewSender(config.SMTPConfig{Enabled: true, Host: "smtp.example.com", From: "a@b.c", Port: 587}, nil).(*SMTPSender)
	assert.True(t, ok)
}

func TestTemplatesRenderCodeAndEscapeHTML(t *testing.T) {
	subject, text, html, err := signupOTPTemplate.render(templateData{Username: "<b>eve</b>", Code: "123456", Minutes: minutes(5 * time.Minute)})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, text, "123456")
	assert.Contains(t, text, "5 minutes")
	assert.Contains(t, html, "<strong>123456</strong>")
	assert.False(t, strings.Contains(html, "<b>eve</b>"), "HTML 正文应转义用户名")
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	s := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 465, From: "noreply@example.com", FromName: "LexiMind", SSL: true, Username: "u", Password: "p"}, nil)
	msg, err := s.buildMessage("alice@example.com", "hi", "text", "<p>html</p>")
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Len(t, s.clientOptions(), 6)

	_, err = s.buildMessage("not an address", "hi", "text", "html")
	assert.Error(t, err)
}

func TestNopSender(t *testing.T) {
	s := NewNopSender(nil)
	require.NoError(t, s.SendSignupOTP(context.Background(), "a@b.c", "a", "000000", time.Minute))
	require.NoError(t, s.SendPasswordResetOTP(context.Background(), "a@b.c", "a", "000000", time.Minute))
	require.NoError(t, s.SendWelcome(context.Background(), "a@b.c", "a"))
}
