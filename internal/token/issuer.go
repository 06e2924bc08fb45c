package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/consts"
	"leximind-server/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// LoginClaims 登录令牌，携带签发时的身份快照。展示字段可能落后于存储中的记录。
type LoginClaims struct {
	UserID   uint             `json:"uid"`
	Email    string           `json:"email"`
	Username string           `json:"username"`
	Image    string           `json:"image,omitempty"`
	IsAdmin  bool             `json:"isAdmin"`
	Type     consts.TokenType `json:"type"`
	// IssuedAtMillis 毫秒级签发时间，用于与撤销水位线比较。iat 只精确到秒
	IssuedAtMillis int64 `json:"iatMs"`
	jwt.RegisteredClaims
}

// ResetClaims 重置密码令牌，只携带用户 ID。
type ResetClaims struct {
	UserID uint             `json:"uid"`
	Type   consts.TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Issuer 使用共享密钥签发与校验 HS256 令牌。
type Issuer struct {
	secret   []byte
	issuer   string
	adminTTL time.Duration
	userTTL  time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewIssuer(cfg config.JWTConfig) *Issuer {
	return &Issuer{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		adminTTL: hoursOr(cfg.AdminExpirationHours, 3),
		userTTL:  hoursOr(cfg.UserExpirationHours, 24),
		resetTTL: minutesOr(cfg.ResetExpirationMinutes, 15),
		now:      time.Now,
	}
}

// WithClock 返回使用指定时钟的副本。
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// TTLFor 管理员令牌较短。
func (i *Issuer) TTLFor(isAdmin bool) time.Duration {
	if isAdmin {
		return i.adminTTL
	}
	return i.userTTL
}

// Mint 为身份签发登录令牌，返回令牌与有效期。
func (i *Issuer) Mint(user *model.User) (string, time.Duration, error) {
	if user == nil {
		return "", 0, errors.New("token: nil identity")
	}
	now := i.now()
	ttl := i.TTLFor(user.IsAdmin)
	claims := LoginClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Image:    user.Image,
		IsAdmin:  user.IsAdmin,
		Type:     consts.TokenTypeLogin,

		IssuedAtMillis: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

// MintReset 签发重置密码令牌。
func (i *Issuer) MintReset(userID uint) (string, error) {
	now := i.now()
	claims := ResetClaims{
		UserID: userID,
		Type:   consts.TokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.resetTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate 校验登录令牌。失败时返回 *Error，区分过期与格式/签名错误。
func (i *Issuer) Validate(raw string) (*LoginClaims, error) {
	claims := &LoginClaims{}
	if err := i.parse(raw, claims); err != nil {
		return nil, err
	}
	if claims.Type != consts.TokenTypeLogin {
		return nil, &Error{Kind: KindMalformed, Err: errors.New("unexpected token type")}
	}
	return claims, nil
}

// ValidateReset 校验重置密码令牌。
func (i *Issuer) ValidateReset(raw string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := i.parse(raw, claims); err != nil {
		return nil, err
	}
	if claims.Type != consts.TokenTypeReset || claims.UserID == 0 {
		return nil, &Error{Kind: KindMalformed, Err: errors.New("unexpected token type")}
	}
	return claims, nil
}

func (i *Issuer) parse(raw string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithTimeFunc(i.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err == nil {
		return nil
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return &Error{Kind: KindExpired, Err: err}
	}
	return &Error{Kind: KindMalformed, Err: err}
}

// FormatTTL 整小时输出为 "3h"，其余沿用 time.Duration 的格式。
func FormatTTL(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		return strconv.FormatInt(int64(d/time.Hour), 10) + "h"
	}
	return d.String()
}

func hoursOr(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Hour
}

func minutesOr(v, fallback int) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v) * time.Minute
}
