package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"leximind-server/internal/model"
	"leximind-server/internal/modules/auth/dto"
	"leximind-server/internal/modules/auth/oauth"
	platformservice "leximind-server/internal/platform/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signupAndVerify(t *testing.T, env *testEnv, email string) *dto.LoginResponse {
	t.Helper()
	ctx := context.Background()
	_, err := env.svc.Signup(ctx, dto.SignupRequest{Username: "lexi", Email: email, Password: testPassword})
	require.NoError(t, err)
	resp, err := env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: email, OTP: env.mailer.lastCode("signup")})
	require.NoError(t, err)
	return resp
}

// 测试内容：生成的验证码为定长数字。
func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateOTP(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "非数字字符: %q", code)
		}
	}
}

// 测试内容：注册发送验证码，邮箱被规范化为小写。
func TestSignup_SendsOTP(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.svc.Signup(context.Background(), dto.SignupRequest{
		Username: "Lexi",
		Email:    "  New@Example.com ",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.Email)
	assert.Len(t, env.mailer.lastCode("signup"), 6)

	user, err := env.users.FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, testPassword, user.Password)
}

// 测试内容：非法输入返回校验错误。
func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)
	cases := []dto.SignupRequest{
		{Username: "", Email: "a@example.com", Password: testPassword},
		{Username: "lexi", Email: "not-an-email", Password: testPassword},
		{Username: "lexi", Email: "a@example.com", Password: "short1"},
	}
	for _, req := range cases {
		_, err := env.svc.Signup(context.Background(), req)
		assertCode(t, err, platformservice.ErrorCodeValidation)
	}
}

// 测试内容：已验证的邮箱不能重复注册，未验证的会被覆盖。
func TestSignup_ExistingIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, dto.SignupRequest{Username: "first", Email: "dup@example.com", Password: testPassword})
	require.NoError(t, err)
	_, err = env.svc.Signup(ctx, dto.SignupRequest{Username: "second", Email: "dup@example.com", Password: testPassword})
	require.NoError(t, err)

	user, err := env.users.FindByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "second", user.Username)

	_, err = env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "dup@example.com", OTP: env.mailer.lastCode("signup")})
	require.NoError(t, err)

	_, err = env.svc.Signup(ctx, dto.SignupRequest{Username: "third", Email: "dup@example.com", Password: testPassword})
	assertCode(t, err, platformservice.ErrorCodeValidation)
}

// 测试内容：反复注册同一未验证邮箱受重发冷却限制，不会无限发信。
func TestSignup_RepeatedOverwriteIsThrottled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := dto.SignupRequest{Username: "lexi", Email: "spam@example.com", Password: testPassword}

	_, err := env.svc.Signup(ctx, req)
	require.NoError(t, err)
	_, err = env.svc.Signup(ctx, req)
	require.NoError(t, err)
	_, err = env.svc.Signup(ctx, req)
	assertCode(t, err, platformservice.ErrorCodeTooManyRequests)
	_, err = env.svc.RequestNewOTP(ctx, "spam@example.com")
	assertCode(t, err, platformservice.ErrorCodeTooManyRequests)
	assert.Equal(t, 2, env.mailer.count("signup"))
}

// 测试内容：验证码只能使用一次，第二次返回无效或过期。
func TestVerifySignup_OneShot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Signup(ctx, dto.SignupRequest{Username: "lexi", Email: "once@example.com", Password: testPassword})
	require.NoError(t, err)
	code := env.mailer.lastCode("signup")

	env.clock.Advance(4 * time.Minute)
	resp, err := env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "once@example.com", OTP: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "24h", resp.ExpiresIn)
	assert.Equal(t, 1, env.mailer.count("welcome"))

	_, err = env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "once@example.com", OTP: code})
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid or expired OTP")

	user, err := env.users.FindByEmail(ctx, "once@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.SignupOTP)
}

// 测试内容：超过 5 分钟的验证码与错误验证码返回同一错误。
func TestVerifySignup_ExpiredAndWrong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Signup(ctx, dto.SignupRequest{Username: "lexi", Email: "late@example.com", Password: testPassword})
	require.NoError(t, err)
	code := env.mailer.lastCode("signup")

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, wrongErr := env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "late@example.com", OTP: wrong})
	require.Error(t, wrongErr)

	env.clock.Advance(5*time.Minute + time.Second)
	_, expiredErr := env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "late@example.com", OTP: code})
	require.Error(t, expiredErr)
	assert.Equal(t, wrongErr.Error(), expiredErr.Error())

	_, err = env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "ghost@example.com", OTP: code})
	assertCode(t, err, platformservice.ErrorCodeNotFound)
}

// 测试内容：重发验证码受冷却限制，已验证身份不能重发。
func TestRequestNewOTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.RequestNewOTP(ctx, "ghost@example.com")
	assertCode(t, err, platformservice.ErrorCodeNotFound)

	_, err = env.svc.Signup(ctx, dto.SignupRequest{Username: "lexi", Email: "re@example.com", Password: testPassword})
	require.NoError(t, err)
	first := env.mailer.lastCode("signup")

	_, err = env.svc.RequestNewOTP(ctx, "re@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, env.mailer.count("signup"))

	_, err = env.svc.RequestNewOTP(ctx, "re@example.com")
	assertCode(t, err, platformservice.ErrorCodeTooManyRequests)

	// 新验证码覆盖旧验证码
	second := env.mailer.lastCode("signup")
	if first != second {
		_, err = env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "re@example.com", OTP: first})
		require.Error(t, err)
	}
	_, err = env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "re@example.com", OTP: second})
	require.NoError(t, err)

	env.limiter.Reset(ctx, resendScope, "re@example.com")
	_, err = env.svc.RequestNewOTP(ctx, "re@example.com")
	assertCode(t, err, platformservice.ErrorCodeValidation)
}

// 测试内容：邮件发送失败返回内部错误并释放冷却。
func TestRequestNewOTP_MailFailureReleasesCooldown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Signup(ctx, dto.SignupRequest{Username: "lexi", Email: "fail@example.com", Password: testPassword})
	require.NoError(t, err)

	env.mailer.fail = errors.New("smtp down")
	_, err = env.svc.RequestNewOTP(ctx, "fail@example.com")
	assertCode(t, err, platformservice.ErrorCodeInternal)

	env.mailer.fail = nil
	_, err = env.svc.RequestNewOTP(ctx, "fail@example.com")
	require.NoError(t, err)
}

// 测试内容：两个不同用户各登录一次，当日总数为 2。
func TestSignin_RecordsLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	signupAndVerify(t, env, "u1@example.com")
	signupAndVerify(t, env, "u2@example.com")
	before := env.countLogins(t)

	for _, email := range []string{"u1@example.com", "u2@example.com"} {
		resp, err := env.svc.Signin(ctx, dto.SigninRequest{Email: email, Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "Sign in successful", resp.Message)
		assert.Equal(t, "24h", resp.ExpiresIn)
	}
	assert.Equal(t, before+2, env.countLogins(t))
}

// 测试内容：管理员登录不计入统计，令牌有效期 3 小时。
func TestSignin_AdminSkipsLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.users.Create(ctx, &model.User{
		Email: "root@example.com", Username: "root", Password: string(hashed), IsAdmin: true, IsVerified: true,
	}))

	resp, err := env.svc.Signin(ctx, dto.SigninRequest{Email: "root@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, "3h", resp.ExpiresIn)
	assert.Equal(t, int64(0), env.countLogins(t))
}

// 测试内容：未知、未验证与密码错误的登录。
func TestSignin_Failures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signin(ctx, dto.SigninRequest{Email: "ghost@example.com", Password: testPassword})
	assertCode(t, err, platformservice.ErrorCodeNotFound)

	_, err = env.svc.Signup(ctx, dto.SignupRequest{Username: "lexi", Email: "pending@example.com", Password: testPassword})
	require.NoError(t, err)
	_, err = env.svc.Signin(ctx, dto.SigninRequest{Email: "pending@example.com", Password: testPassword})
	assertCode(t, err, platformservice.ErrorCodeNotFound)

	signupAndVerify(t, env, "ok@example.com")
	_, err = env.svc.Signin(ctx, dto.SigninRequest{Email: "ok@example.com", Password: "wrong-password-1"})
	assertCode(t, err, platformservice.ErrorCodeValidation)
}

// 测试内容：完整的找回密码流程，重置后旧令牌早于水位线。
func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	login := signupAndVerify(t, env, "reset@example.com")

	_, err := env.svc.ForgetPassword(ctx, "reset@example.com")
	require.NoError(t, err)
	_, err = env.svc.ForgetPassword(ctx, "reset@example.com")
	assertCode(t, err, platformservice.ErrorCodeTooManyRequests)

	tokenResp, err := env.svc.VerifyResetOTP(ctx, dto.VerifyOTPRequest{Email: "reset@example.com", OTP: env.mailer.lastCode("reset")})
	require.NoError(t, err)

	// 登录令牌不能当作重置令牌使用
	_, err = env.svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: login.Token, Password: "Another-Secret-99"})
	assertCode(t, err, platformservice.ErrorCodeUnauthorized)

	env.clock.Advance(2 * time.Second)
	_, err = env.svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: tokenResp.Token, Password: "Another-Secret-99"})
	require.NoError(t, err)

	user, err := env.users.FindByEmail(ctx, "reset@example.com")
	require.NoError(t, err)
	assert.Equal(t, env.clock.Now().UnixMilli(), user.TokensValidAfter)

	claims, err := env.svc.Issuer().Validate(login.Token)
	require.NoError(t, err)
	assert.Less(t, claims.IssuedAtMillis, user.TokensValidAfter)

	_, err = env.svc.Signin(ctx, dto.SigninRequest{Email: "reset@example.com", Password: testPassword})
	assertCode(t, err, platformservice.ErrorCodeValidation)
	_, err = env.svc.Signin(ctx, dto.SigninRequest{Email: "reset@example.com", Password: "Another-Secret-99"})
	require.NoError(t, err)
}

// 测试内容：重置令牌过期后返回 Token expired。
func TestResetPassword_Expired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	signupAndVerify(t, env, "slow@example.com")
	_, err := env.svc.ForgetPassword(ctx, "slow@example.com")
	require.NoError(t, err)
	tokenResp, err := env.svc.VerifyResetOTP(ctx, dto.VerifyOTPRequest{Email: "slow@example.com", OTP: env.mailer.lastCode("reset")})
	require.NoError(t, err)

	env.clock.Advance(16 * time.Minute)
	_, err = env.svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: tokenResp.Token, Password: "Another-Secret-99"})
	assert.EqualError(t, err, "Token expired")

	_, err = env.svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: "garbage", Password: "Another-Secret-99"})
	assert.EqualError(t, err, "Invalid token")
}

// 测试内容：未注册或未验证的邮箱不能找回密码。
func TestForgetPassword_Unknown(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.ForgetPassword(context.Background(), "ghost@example.com")
	assertCode(t, err, platformservice.ErrorCodeNotFound)
}

// 测试内容：第三方登录创建无密码的已验证身份，再次登录刷新头像。
func TestCompleteOAuthLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	login, err := env.svc.CompleteOAuthLogin(ctx, &oauth.Profile{Email: "G@Example.com", Name: "Gee", Picture: "https://img/1"})
	require.NoError(t, err)
	assert.Equal(t, "g@example.com", login.Email)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, 1, env.mailer.count("welcome"))

	user, err := env.users.FindByEmail(ctx, "g@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.False(t, user.CanPasswordLogin())

	login, err = env.svc.CompleteOAuthLogin(ctx, &oauth.Profile{Email: "g@example.com", Picture: "https://img/2"})
	require.NoError(t, err)
	assert.Equal(t, "https://img/2", login.Image)
	assert.Equal(t, 1, env.mailer.count("welcome"))
	assert.Equal(t, int64(2), env.countLogins(t))

	_, err = env.svc.Signin(ctx, dto.SigninRequest{Email: "g@example.com", Password: testPassword})
	assertCode(t, err, platformservice.ErrorCodeValidation)

	_, err = env.svc.CompleteOAuthLogin(ctx, &oauth.Profile{})
	assertCode(t, err, platformservice.ErrorCodeUnauthorized)
}

// 测试内容：他人抢注但未验证的邮箱经第三方登录后，抢注时设置的密码与注册验证码失效。
func TestCompleteOAuthLogin_UnverifiedIdentityDropsPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Signup(ctx, dto.SignupRequest{Username: "squatter", Email: "victim@example.com", Password: testPassword})
	require.NoError(t, err)
	pendingCode := env.mailer.lastCode("signup")

	login, err := env.svc.CompleteOAuthLogin(ctx, &oauth.Profile{Email: "victim@example.com", Name: "Victim"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	user, err := env.users.FindByEmail(ctx, "victim@example.com")
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.Password)
	assert.Empty(t, user.SignupOTP)
	assert.Equal(t, int64(0), user.SignupOTPExpiresAt)

	_, err = env.svc.Signin(ctx, dto.SigninRequest{Email: "victim@example.com", Password: testPassword})
	assertCode(t, err, platformservice.ErrorCodeValidation)

	_, err = env.svc.VerifySignup(ctx, dto.VerifyOTPRequest{Email: "victim@example.com", OTP: pendingCode})
	require.Error(t, err)
}
