package service

import (
	"context"
	"errors"

	"leximind-server/internal/model"
	"leximind-server/internal/modules/auth/dto"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/token"
	"leximind-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signin 邮箱密码登录。未验证或不存在的身份统一返回 404。
func (s *Service) Signin(ctx context.Context, req dto.SigninRequest) (*dto.LoginResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformservice.WrapInternal("Failed to load user", err)
	}
	if user == nil || !user.IsVerified {
		return nil, platformservice.NewNotFoundError("User not found or not verified")
	}
	if !user.CanPasswordLogin() {
		return nil, platformservice.NewValidationError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, platformservice.NewValidationError("Invalid credentials")
	}

	signed, ttl, err := s.completeLogin(ctx, user, "password")
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:   "Sign in successful",
		Token:     signed,
		Email:     user.Email,
		Image:     user.Image,
		IsAdmin:   user.IsAdmin,
		ExpiresIn: token.FormatTTL(ttl),
	}, nil
}

// Me 返回网关解析出的当前身份（存储中的最新记录）。
func (s *Service) Me(user *model.User) *dto.MeResponse {
	return &dto.MeResponse{
		Username: user.Username,
		Email:    user.Email,
		Image:    user.Image,
		IsAdmin:  user.IsAdmin,
	}
}
