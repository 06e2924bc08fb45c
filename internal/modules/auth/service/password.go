package service

import (
	"context"
	"errors"
	"strings"

	"leximind-server/internal/consts"
	"leximind-server/internal/modules/auth/dto"
	"leximind-server/internal/platform/events"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/token"
	"leximind-server/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ForgetPassword 向已验证的身份发送重置密码验证码。
func (s *Service) ForgetPassword(ctx context.Context, rawEmail string) (*dto.MessageResponse, error) {
	email := utils.NormalizeEmail(rawEmail)
	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformservice.WrapInternal("Failed to load user", err)
	}
	if user == nil || !user.IsVerified {
		return nil, platformservice.NewNotFoundError("User not found or not verified")
	}
	if err := s.checkResend(ctx, email); err != nil {
		return nil, err
	}
	if err := s.issueOTP(ctx, user, consts.OTPPurposeReset); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "OTP sent to your email", Email: email}, nil
}

// VerifyResetOTP 校验重置验证码，换取短期重置令牌。
func (s *Service) VerifyResetOTP(ctx context.Context, req dto.VerifyOTPRequest) (*dto.ResetTokenResponse, error) {
	email := utils.NormalizeEmail(req.Email)
	user, err := s.verifyOTP(ctx, email, strings.TrimSpace(req.OTP), consts.OTPPurposeReset, nil)
	if err != nil {
		return nil, err
	}
	signed, err := s.issuer.MintReset(user.ID)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to generate token", err)
	}
	return &dto.ResetTokenResponse{Token: signed}, nil
}

// ResetPassword 使用重置令牌设置新密码，并使此前签发的登录令牌全部失效。
func (s *Service) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	claims, err := s.issuer.ValidateReset(req.Token)
	if err != nil {
		if token.IsExpired(err) {
			return nil, platformservice.NewUnauthorizedError("Token expired")
		}
		return nil, platformservice.NewUnauthorizedError("Invalid token")
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		return nil, platformservice.NewValidationError(msg)
	}

	user, err := s.userStore.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("User not found")
		}
		return nil, platformservice.WrapInternal("Failed to load user", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to hash password", err)
	}
	if err := s.userStore.UpdateFields(ctx, user.ID, map[string]interface{}{
		"password":             string(hashed),
		"tokens_valid_after":   s.Clock().UnixMilli(),
		"reset_otp":            "",
		"reset_otp_expires_at": 0,
	}); err != nil {
		return nil, platformservice.WrapInternal("Failed to reset password", err)
	}

	s.Log().Info("🔑 密码已重置", zap.Uint("user_id", user.ID))
	s.publish(ctx, events.Event{Type: events.TypePasswordReset, UserID: user.ID, Email: user.Email})
	return &dto.MessageResponse{Message: "Password reset successful"}, nil
}
