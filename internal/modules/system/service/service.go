package service

import (
	"context"
	"time"

	"leximind-server/internal/modules/system/repo"
	platformservice "leximind-server/internal/platform/service"
)

// Counter 各业务模块提供的总数统计。
type Counter interface {
	CountAll(ctx context.Context) (int64, error)
}

// NewFeedbackCounter 未读反馈数。
type NewFeedbackCounter interface {
	CountNew(ctx context.Context) (int64, error)
}

type Service struct {
	*platformservice.AppService
	systemStore repo.SystemStore
	users       Counter
	notes       Counter
	posts       Counter
	feedback    NewFeedbackCounter
	startedAt   time.Time
}

func New(
	appService *platformservice.AppService,
	systemStore repo.SystemStore,
	users Counter,
	notes Counter,
	posts Counter,
	feedback NewFeedbackCounter,
) *Service {
	return &Service{
		AppService:  appService,
		systemStore: systemStore,
		users:       users,
		notes:       notes,
		posts:       posts,
		feedback:    feedback,
		startedAt:   appService.Clock(),
	}
}
