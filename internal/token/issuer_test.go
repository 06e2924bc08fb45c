package token

import (
	"testing"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/model"
	"leximind-server/internal/testutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(clock *testutils.Clock) *Issuer {
	return NewIssuer(config.JWTConfig{Secret: "test-secret", Issuer: "test"}).WithClock(clock.Now)
}

// 测试内容：管理员令牌在 2h59m 时有效，满 3 小时后过期。
func TestMint_AdminTokenExpiresAfterThreeHours(t *testing.T) {
	clock := testutils.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	issuer := newTestIssuer(clock)

	signed, ttl, err := issuer.Mint(&model.User{ID: 1, Email: "root@example.com", Username: "root", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, ttl)

	clock.Advance(2*time.Hour + 59*time.Minute)
	claims, err := issuer.Validate(signed)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "root@example.com", claims.Email)

	clock.Advance(time.Minute)
	_, err = issuer.Validate(signed)
	require.Error(t, err)
	assert.True(t, IsExpired(err))
}

// 测试内容：普通用户令牌有效期为 24 小时。
func TestMint_UserTokenLastsOneDay(t *testing.T) {
	clock := testutils.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 250*int(time.Millisecond), time.UTC))
	issuer := newTestIssuer(clock)

	signed, ttl, err := issuer.Mint(&model.User{ID: 2, Email: "alice@example.com", Username: "alice", Image: "https://img/a.png"})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
	assert.Equal(t, "24h", FormatTTL(ttl))

	clock.Advance(23 * time.Hour)
	claims, err := issuer.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(2), claims.UserID)
	assert.Equal(t, "https://img/a.png", claims.Image)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 250*int(time.Millisecond), time.UTC).UnixMilli(), claims.IssuedAtMillis)
	assert.False(t, claims.IsAdmin)

	clock.Advance(time.Hour)
	_, err = issuer.Validate(signed)
	assert.True(t, IsExpired(err))
}

// 测试内容：签名错误、密钥不同或格式错误的令牌归类为 malformed。
func TestValidate_Malformed(t *testing.T) {
	clock := testutils.NewClock(time.Now())
	issuer := newTestIssuer(clock)
	other := NewIssuer(config.JWTConfig{Secret: "other-secret"}).WithClock(clock.Now)

	signed, _, err := other.Mint(&model.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", signed, signed + "x"} {
		_, err := issuer.Validate(raw)
		require.Error(t, err)
		var tokenErr *Error
		require.ErrorAs(t, err, &tokenErr)
		assert.Equal(t, KindMalformed, tokenErr.Kind, "token %q", raw)
	}
}

// 测试内容：重置令牌与登录令牌不能互相冒用，重置令牌 15 分钟过期。
func TestResetToken(t *testing.T) {
	clock := testutils.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	issuer := newTestIssuer(clock)

	reset, err := issuer.MintReset(7)
	require.NoError(t, err)
	login, _, err := issuer.Mint(&model.User{ID: 7, Email: "a@b.c"})
	require.NoError(t, err)

	claims, err := issuer.ValidateReset(reset)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)

	_, err = issuer.Validate(reset)
	assert.Error(t, err, "重置令牌不能用于登录")
	_, err = issuer.ValidateReset(login)
	assert.Error(t, err, "登录令牌不能用于重置密码")

	clock.Advance(15 * time.Minute)
	_, err = issuer.ValidateReset(reset)
	assert.True(t, IsExpired(err))
}

// 测试内容：拒绝 none 算法等非 HS256 令牌。
func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	clock := testutils.NewClock(time.Now())
	issuer := newTestIssuer(clock)

	claims := LoginClaims{
		UserID: 1, Email: "a@b.c", Type: "login",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour))},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Validate(unsigned)
	assert.Error(t, err)
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "3h", FormatTTL(3*time.Hour))
	assert.Equal(t, "15m0s", FormatTTL(15*time.Minute))
}
