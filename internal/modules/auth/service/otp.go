package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"leximind-server/internal/consts"
	"leximind-server/internal/logger"
	"leximind-server/internal/model"
	platformservice "leximind-server/internal/platform/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resendScope = "otp"

var errInvalidOTP = platformservice.NewValidationError("Invalid or expired OTP")

// generateOTP 生成定长数字验证码，允许前导 0。
func generateOTP(length int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// checkResend 同一邮箱在间隔内只能请求一次验证码。
func (s *Service) checkResend(ctx context.Context, email string) error {
	if s.limiter == nil || s.limiter.Allow(ctx, resendScope, email, s.resendInterval) {
		return nil
	}
	return platformservice.NewTooManyRequestsError("Please wait before requesting another OTP")
}

// issueOTP 生成并保存验证码后通过邮件投递。投递失败时验证码仍已覆盖旧值。
func (s *Service) issueOTP(ctx context.Context, user *model.User, purpose consts.OTPPurpose) error {
	code, err := generateOTP(s.otpLength)
	if err != nil {
		return platformservice.WrapInternal("Failed to generate OTP", err)
	}
	expiresAt := s.Clock().Add(s.otpTTL).UnixMilli()
	if err := s.userStore.SetOTP(ctx, user.ID, purpose, code, expiresAt); err != nil {
		return platformservice.WrapInternal("Failed to save OTP", err)
	}

	if s.mailer != nil {
		var sendErr error
		switch purpose {
		case consts.OTPPurposeReset:
			sendErr = s.mailer.SendPasswordResetOTP(ctx, user.Email, user.Username, code, s.otpTTL)
		default:
			sendErr = s.mailer.SendSignupOTP(ctx, user.Email, user.Username, code, s.otpTTL)
		}
		if sendErr != nil {
			if s.limiter != nil {
				s.limiter.Reset(ctx, resendScope, user.Email)
			}
			return platformservice.WrapInternal("Failed to send OTP email", sendErr)
		}
	}

	if s.observer != nil {
		s.observer.ObserveOTP(string(purpose))
	}
	s.Log().Info("🔐 验证码已签发",
		zap.String("email", logger.MaskEmail(user.Email)),
		zap.String("purpose", string(purpose)),
	)
	return nil
}

// verifyOTP 校验并消费验证码。不匹配与过期返回同一个错误。
func (s *Service) verifyOTP(
	ctx context.Context,
	email, code string,
	purpose consts.OTPPurpose,
	extra map[string]interface{},
) (*model.User, error) {
	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformservice.NewNotFoundError("User not found")
		}
		return nil, platformservice.WrapInternal("Failed to load user", err)
	}

	ok, err := s.userStore.ConsumeOTP(ctx, user.ID, purpose, code, s.Clock().UnixMilli(), extra)
	if err != nil {
		return nil, platformservice.WrapInternal("Failed to verify OTP", err)
	}
	if !ok {
		return nil, errInvalidOTP
	}

	switch purpose {
	case consts.OTPPurposeSignup:
		user.SignupOTP, user.SignupOTPExpiresAt = "", 0
	case consts.OTPPurposeReset:
		user.ResetOTP, user.ResetOTPExpiresAt = "", 0
	}
	return user, nil
}
