package service

import (
	"context"
	"errors"

	"leximind-server/internal/model"
	"leximind-server/internal/modules/user/repo"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	*platformservice.AppService
	userStore repo.UserStore
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
	}
}

// EnsureAdmin 创建或提升一个已验证的管理员账号，返回账号及是否为新建。
// 管理员身份只能通过命令行获得。
func (s *Service) EnsureAdmin(ctx context.Context, email, username, password string) (*model.User, bool, error) {
	email = utils.NormalizeEmail(email)
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, false, platformservice.NewValidationError(msg)
	}
	if ok, msg := utils.ValidateUsername(username); !ok {
		return nil, false, platformservice.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, false, platformservice.NewValidationError(msg)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, platformservice.WrapInternal("密码加密失败", err)
	}

	existing, err := s.userStore.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.IsAdmin = true
		existing.IsVerified = true
		existing.Username = username
		existing.Password = string(hashed)
		existing.TokensValidAfter = s.Clock().UnixMilli()
		if err := s.userStore.Save(ctx, existing); err != nil {
			return nil, false, platformservice.WrapInternal("更新管理员失败", err)
		}
		s.Log().Info("✅ 已提升为管理员", zap.Uint("user_id", existing.ID))
		return existing, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := &model.User{
			Email:      email,
			Username:   username,
			Password:   string(hashed),
			IsAdmin:    true,
			IsVerified: true,
		}
		if err := s.userStore.Create(ctx, user); err != nil {
			return nil, false, platformservice.WrapInternal("创建管理员失败", err)
		}
		s.Log().Info("✅ 管理员已创建", zap.Uint("user_id", user.ID))
		return user, true, nil
	default:
		return nil, false, platformservice.WrapInternal("查询用户失败", err)
	}
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.userStore.CountAll(ctx)
}
