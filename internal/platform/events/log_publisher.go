package events

import (
	"context"
	"time"

	"leximind-server/internal/logger"

	"go.uber.org/zap"
)

// LogPublisher 把事件写入日志，用于未配置 Kafka 的环境。
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(lg *zap.Logger) *LogPublisher {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &LogPublisher{logger: lg}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	at := event.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}
	p.logger.Info("📣 事件",
		zap.String("type", event.Type),
		zap.Uint("user_id", event.UserID),
		zap.String("email", logger.MaskEmail(event.Email)),
		zap.Time("occurred_at", at.UTC()),
		zap.Any("metadata", event.Metadata),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
