package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"leximind-server/internal/config"
	statsrepo "leximind-server/internal/modules/stats/repo"
	statsservice "leximind-server/internal/modules/stats/service"
	userrepo "leximind-server/internal/modules/user/repo"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/testutils"
	"leximind-server/internal/token"
)

const testPassword = "Lexi-Mind-2024-pass"

type sentMail struct {
	kind string
	to   string
	code string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *fakeMailer) record(kind, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{kind: kind, to: to, code: code})
	return nil
}

func (m *fakeMailer) SendSignupOTP(_ context.Context, to, _ string, code string, _ time.Duration) error {
	return m.record("signup", to, code)
}

func (m *fakeMailer) SendPasswordResetOTP(_ context.Context, to, _ string, code string, _ time.Duration) error {
	return m.record("reset", to, code)
}

func (m *fakeMailer) SendWelcome(_ context.Context, to, _ string) error {
	return m.record("welcome", to, "")
}

// lastCode 返回最近一封指定类型邮件中的验证码。
func (m *fakeMailer) lastCode(kind string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].kind == kind {
			return m.sent[i].code
		}
	}
	return ""
}

func (m *fakeMailer) count(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sent {
		if s.kind == kind {
			n++
		}
	}
	return n
}

type fakeLimiter struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (l *fakeLimiter) Allow(_ context.Context, scope, subject string, _ time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		l.seen = map[string]bool{}
	}
	key := scope + ":" + subject
	if l.seen[key] {
		return false
	}
	l.seen[key] = true
	return true
}

func (l *fakeLimiter) Reset(_ context.Context, scope, subject string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seen, scope+":"+subject)
}

type testEnv struct {
	svc     *Service
	mailer  *fakeMailer
	limiter *fakeLimiter
	clock   *testutils.Clock
	users   userrepo.UserStore
	stats   *statsservice.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	clock := testutils.NewClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	app := platformservice.NewAppService(nil, time.UTC)
	app.Now = clock.Now

	users := userrepo.NewUserRepository(gdb)
	stats := statsservice.New(app, statsrepo.NewLedgerRepository(gdb))
	issuer := token.NewIssuer(config.JWTConfig{Secret: "test-secret", Issuer: "test"}).WithClock(clock.Now)
	mailer := &fakeMailer{}
	limiter := &fakeLimiter{}

	svc := New(app, users, issuer, mailer, nil, stats, limiter, nil, config.OTPConfig{
		Length:                6,
		TTLMinutes:            5,
		ResendIntervalSeconds: 60,
	})
	return &testEnv{svc: svc, mailer: mailer, limiter: limiter, clock: clock, users: users, stats: stats}
}

func (e *testEnv) countLogins(t *testing.T) int64 {
	t.Helper()
	day := e.clock.Now()
	rows, err := e.stats.QueryRange(context.Background(), day, day)
	if err != nil {
		t.Fatalf("QueryRange: %v", err)
	}
	return rows[0].Count
}

func assertCode(t *testing.T, err error, code platformservice.ErrorCode) {
	t.Helper()
	if !platformservice.IsCode(err, code) {
		t.Fatalf("期望错误码 %s，实际为 %v", code, err)
	}
}
