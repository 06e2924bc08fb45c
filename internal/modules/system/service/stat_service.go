package service

import (
	"context"
	"runtime"
	"time"

	moduledto "leximind-server/internal/modules/system/dto"
	platformservice "leximind-server/internal/platform/service"

	"go.uber.org/zap"
)

// AdminOverview 获取后台概览统计数据。
func (s *Service) AdminOverview(ctx context.Context) (*moduledto.OverviewResponse, error) {
	userCount, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal("Error counting users", err)
	}
	noteCount, err := s.notes.CountAll(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal("Error counting notes", err)
	}
	postCount, err := s.posts.CountAll(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal("Error counting blog posts", err)
	}
	feedbackCount, err := s.feedback.CountNew(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal("Error counting feedback", err)
	}

	return &moduledto.OverviewResponse{
		UserCount:        userCount,
		NoteCount:        noteCount,
		PostCount:        postCount,
		NewFeedbackCount: feedbackCount,
		SystemInfo: moduledto.SystemInfoResponse{
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
			Database:     s.systemStore.Dialect(),
			Uptime:       s.Clock().Sub(s.startedAt).Truncate(time.Second).String(),
		},
	}, nil
}

// Health 数据库可达即视为健康。
func (s *Service) Health(ctx context.Context) (*moduledto.HealthResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.systemStore.Ping(ctx); err != nil {
		s.Log().Warn("⚠️ 数据库健康检查失败", zap.Error(err))
		return &moduledto.HealthResponse{Status: "degraded", Database: "down"}, false
	}
	return &moduledto.HealthResponse{Status: "ok", Database: "up"}, true
}
