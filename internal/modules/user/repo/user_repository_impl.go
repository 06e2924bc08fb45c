package repo

import (
	"context"
	"fmt"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	tx := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) SetOTP(ctx context.Context, id uint, purpose consts.OTPPurpose, code string, expiresAt int64) error {
	codeCol, expCol, err := otpColumns(purpose)
	if err != nil {
		return err
	}
	otherCode, otherExp, _ := otpColumns(otherPurpose(purpose))
	return r.UpdateFields(ctx, id, map[string]interface{}{
		codeCol:   code,
		expCol:    expiresAt,
		otherCode: "",
		otherExp:  0,
	})
}

func (r *UserRepository) ConsumeOTP(
	ctx context.Context,
	id uint,
	purpose consts.OTPPurpose,
	code string,
	nowMillis int64,
	extra map[string]interface{},
) (bool, error) {
	if code == "" {
		return false, nil
	}
	codeCol, expCol, err := otpColumns(purpose)
	if err != nil {
		return false, err
	}

	updates := map[string]interface{}{codeCol: "", expCol: 0}
	for k, v := range extra {
		updates[k] = v
	}

	// 条件更新保证同一验证码在并发下只能被消费一次
	tx := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Where(codeCol+" = ?", code).
		Where(expCol+" >= ?", nowMillis).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func otpColumns(purpose consts.OTPPurpose) (string, string, error) {
	switch purpose {
	case consts.OTPPurposeSignup:
		return "signup_otp", "signup_otp_expires_at", nil
	case consts.OTPPurposeReset:
		return "reset_otp", "reset_otp_expires_at", nil
	default:
		return "", "", fmt.Errorf("unknown otp purpose %q", purpose)
	}
}

func otherPurpose(purpose consts.OTPPurpose) consts.OTPPurpose {
	if purpose == consts.OTPPurposeSignup {
		return consts.OTPPurposeReset
	}
	return consts.OTPPurposeSignup
}
