package repo

import (
	"context"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"
)

// UserStore 认证流程所需的身份存储能力。
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	SetOTP(ctx context.Context, id uint, purpose consts.OTPPurpose, code string, expiresAt int64) error
	ConsumeOTP(ctx context.Context, id uint, purpose consts.OTPPurpose, code string, nowMillis int64, extra map[string]interface{}) (bool, error)
}
