package service

import (
	"context"
	"errors"
	"strings"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/auth/dto"
	"leximind-server/internal/platform/events"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/token"
	"leximind-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup 注册或覆盖未验证的身份，并发送注册验证码。
func (s *Service) Signup(ctx context.Context, req dto.SignupRequest) (*dto.MessageResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if ok, msg := utils.ValidateUsername(username); !ok {
		return nil, platformservice.NewValidationError(msg)
	}
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, platformservice.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		return nil, platformservice.NewValidationError(msg)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to hash password", err)
	}

	user, err := s.userStore.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsVerified {
			return nil, platformservice.NewValidationError("User already exists")
		}
		// 未完成验证的注册可被重新注册覆盖，重新发码与 request-new-otp 共用冷却
		if err := s.checkResend(ctx, email); err != nil {
			return nil, err
		}
		user.Username = username
		user.Password = string(hashed)
		if err := s.userStore.Save(ctx, user); err != nil {
			return nil, platformservice.WrapInternal("Failed to save user", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &model.User{Email: email, Username: username, Password: string(hashed)}
		if err := s.userStore.Create(ctx, user); err != nil {
			return nil, platformservice.WrapInternal("Failed to create user", err)
		}
		s.publish(ctx, events.Event{Type: events.TypeUserRegistered, UserID: user.ID, Email: user.Email,
			Metadata: map[string]string{"method": "password"}})
	default:
		return nil, platformservice.WrapInternal("Failed to load user", err)
	}

	if err := s.issueOTP(ctx, user, consts.OTPPurposeSignup); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "OTP sent, please verify", Email: email}, nil
}

// RequestNewOTP 为未验证的身份重新发送注册验证码。
func (s *Service) RequestNewOTP(ctx context.Context, rawEmail string) (*dto.MessageResponse, error) {
	email := utils.NormalizeEmail(rawEmail)
	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("User not found")
		}
		return nil, platformservice.WrapInternal("Failed to load user", err)
	}
	if user.IsVerified {
		return nil, platformservice.NewValidationError("User is already verified")
	}
	if err := s.checkResend(ctx, email); err != nil {
		return nil, err
	}
	if err := s.issueOTP(ctx, user, consts.OTPPurposeSignup); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "New OTP sent successfully", Email: email}, nil
}

// VerifySignup 校验注册验证码，成功后标记已验证并直接登录。
func (s *Service) VerifySignup(ctx context.Context, req dto.VerifyOTPRequest) (*dto.LoginResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	user, err := s.verifyOTP(ctx, email, strings.TrimSpace(req.OTP), consts.OTPPurposeSignup,
		map[string]interface{}{"is_verified": true})
	if err != nil {
		return nil, err
	}
	user.IsVerified = true

	s.sendWelcome(ctx, user)
	s.publish(ctx, events.Event{Type: events.TypeUserVerified, UserID: user.ID, Email: user.Email})

	signed, ttl, err := s.completeLogin(ctx, user, "otp")
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:   "Signup completed",
		Token:     signed,
		Email:     user.Email,
		Image:     user.Image,
		IsAdmin:   user.IsAdmin,
		ExpiresIn: token.FormatTTL(ttl),
	}, nil
}
