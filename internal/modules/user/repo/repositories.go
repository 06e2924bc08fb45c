package repo

import (
	"context"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"

	"gorm.io/gorm"
)

// UserStore 身份记录的持久化接口。
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	// SetOTP 写入指定用途的验证码，同时清除另一用途的待验证码。
	SetOTP(ctx context.Context, id uint, purpose consts.OTPPurpose, code string, expiresAt int64) error
	// ConsumeOTP 仅当验证码匹配且未过期时清除它（并应用 extra 更新），返回是否命中。
	ConsumeOTP(ctx context.Context, id uint, purpose consts.OTPPurpose, code string, nowMillis int64, extra map[string]interface{}) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}
