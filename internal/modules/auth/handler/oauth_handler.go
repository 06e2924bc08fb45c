package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/consts"
	"leximind-server/internal/modules/auth/oauth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GoogleLogin GET /auth/google，写入 state cookie 后跳转授权页。
func (h *Handler) GoogleLogin(c *gin.Context) {
	if h.provider == nil {
		httpx.WriteError(c, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	state := uuid.NewString()
	h.setStateCookie(c, state, int(consts.OAuthStateTTL.Seconds()))
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// GoogleCallback GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.provider == nil {
		httpx.WriteError(c, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	expected, _ := c.Cookie(consts.OAuthStateCookie)
	h.setStateCookie(c, "", -1)
	if expected == "" || c.Query("state") != expected {
		h.redirectError(c, "no_user")
		return
	}

	ctx := c.Request.Context()
	profile, err := h.provider.Exchange(ctx, c.Query("code"))
	if err != nil {
		if errors.Is(err, oauth.ErrNoProfile) {
			h.redirectError(c, "no_user")
			return
		}
		zap.L().Warn("⚠️ 第三方登录换取身份失败", zap.Error(err))
		h.redirectError(c, "server_error")
		return
	}

	login, err := h.authService.CompleteOAuthLogin(ctx, profile)
	if err != nil {
		zap.L().Error("❌ 第三方登录失败", zap.Error(err))
		h.redirectError(c, "server_error")
		return
	}

	q := url.Values{}
	q.Set("token", login.Token)
	q.Set("email", login.Email)
	q.Set("image", login.Image)
	q.Set("isAdmin", strconv.FormatBool(login.IsAdmin))
	c.Redirect(http.StatusFound, strings.TrimRight(h.clientURL, "/")+"?"+q.Encode())
}

func (h *Handler) redirectError(c *gin.Context, reason string) {
	q := url.Values{}
	q.Set("status", "error")
	q.Set("message", reason)
	c.Redirect(http.StatusFound, strings.TrimRight(h.clientURL, "/")+"/signup?"+q.Encode())
}

func (h *Handler) setStateCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.OAuthStateCookie, value, maxAge, "/auth", "", h.secureCookie, true)
}
