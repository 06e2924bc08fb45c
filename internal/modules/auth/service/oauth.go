package service

import (
	"context"
	"errors"
	"strings"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/auth/oauth"
	"leximind-server/internal/platform/events"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/utils"

	"gorm.io/gorm"
)

// OAuthLogin 第三方登录成功后回跳客户端所需的数据。
type OAuthLogin struct {
	Token   string
	Email   string
	Image   string
	IsAdmin bool
}

// CompleteOAuthLogin 按第三方断言的邮箱查找或创建身份，并签发登录令牌。
// 新建的身份没有密码，只能继续走第三方登录。
func (s *Service) CompleteOAuthLogin(ctx context.Context, profile *oauth.Profile) (*OAuthLogin, error) {
	if profile == nil || strings.TrimSpace(profile.Email) == "" {
		return nil, platformservice.NewUnauthorizedError("No user returned from provider")
	}
	email := utils.NormalizeEmail(profile.Email)

	user, err := s.userStore.FindByEmail(ctx, email)
	switch {
	case err == nil:
		updates := map[string]interface{}{}
		if profile.Picture != "" && profile.Picture != user.Image {
			updates["image"] = profile.Picture
			user.Image = profile.Picture
		}
		// 第三方已确认邮箱归属。未验证时的密码由先注册者设置，无法证明归属，一并清除
		if !user.IsVerified {
			updates["is_verified"] = true
			updates["password"] = ""
			updates["signup_otp"] = ""
			updates["signup_otp_expires_at"] = 0
			user.IsVerified = true
			user.Password = ""
		}
		if len(updates) > 0 {
			if err := s.userStore.UpdateFields(ctx, user.ID, updates); err != nil {
				return nil, platformservice.WrapInternal("Failed to update user", err)
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		username := strings.TrimSpace(profile.Name)
		if username == "" {
			username = strings.SplitN(email, "@", 2)[0]
		}
		if runes := []rune(username); len(runes) > consts.MaxUsernameRunes {
			username = string(runes[:consts.MaxUsernameRunes])
		}
		user = &model.User{
			Email:      email,
			Username:   username,
			Image:      profile.Picture,
			IsVerified: true,
		}
		if err := s.userStore.Create(ctx, user); err != nil {
			return nil, platformservice.WrapInternal("Failed to create user", err)
		}
		s.publish(ctx, events.Event{Type: events.TypeUserRegistered, UserID: user.ID, Email: user.Email,
			Metadata: map[string]string{"method": "google"}})
		s.sendWelcome(ctx, user)
	default:
		return nil, platformservice.WrapInternal("Failed to load user", err)
	}

	signed, _, err := s.completeLogin(ctx, user, "google")
	if err != nil {
		return nil, err
	}
	return &OAuthLogin{Token: signed, Email: user.Email, Image: user.Image, IsAdmin: user.IsAdmin}, nil
}
