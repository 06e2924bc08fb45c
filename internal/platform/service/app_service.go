package service

import (
	"time"

	"go.uber.org/zap"
)

// AppService 是各模块服务共享的运行时依赖：日志、时钟与统计时区。
// 测试通过替换 Now 控制过期相关的行为。
type AppService struct {
	Logger   *zap.Logger
	Now      func() time.Time
	Location *time.Location
}

func NewAppService(logger *zap.Logger, location *time.Location) *AppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &AppService{
		Logger:   logger,
		Now:      time.Now,
		Location: location,
	}
}

// Clock 返回当前时间，Now 未设置时使用 time.Now。
func (s *AppService) Clock() time.Time {
	if s == nil || s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Log 返回非空 logger。
func (s *AppService) Log() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
