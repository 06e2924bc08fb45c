package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 网关错误码，前端据此决定是否跳转登录页。
const (
	CodeAuthRequired   = "auth_required"
	CodeSessionExpired = "session_expired"
	CodeInvalidToken   = "invalid_token"
	CodeUserNotFound   = "user_not_found"
)

// UserResolver 按令牌中的邮箱重新加载身份。
type UserResolver interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticate 会话网关：校验 Bearer 令牌并把存储中的最新身份写入上下文。
func Authenticate(issuer *token.Issuer, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithCode(c, http.StatusUnauthorized, "Authentication required", CodeAuthRequired)
			return
		}

		claims, err := issuer.Validate(raw)
		if err != nil {
			if token.IsExpired(err) {
				abortWithCode(c, http.StatusUnauthorized, "Session expired. Please login again.", CodeSessionExpired)
				return
			}
			abortWithCode(c, http.StatusUnauthorized, "Invalid token. Please login again.", CodeInvalidToken)
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortWithCode(c, http.StatusNotFound, "User not found", CodeUserNotFound)
				return
			}
			zap.L().Error("❌ 会话网关加载用户失败", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		// 水位线之前 (含同一毫秒) 签发的令牌全部失效
		if claims.IssuedAtMillis <= user.TokensValidAfter {
			abortWithCode(c, http.StatusUnauthorized, "Session expired. Please login again.", CodeSessionExpired)
			return
		}

		c.Set(consts.ContextUserKey, user)
		c.Set(consts.ContextClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin 必须挂在 Authenticate 之后。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	return httpx.CurrentUser(c)
}

func CurrentClaims(c *gin.Context) (*token.LoginClaims, bool) {
	return httpx.CurrentClaims(c)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}

func abortWithCode(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
