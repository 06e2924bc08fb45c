package events

import (
	"context"
	"time"

	"leximind-server/internal/config"

	"go.uber.org/zap"
)

// 事件类型
const (
	TypeUserRegistered = "user.registered"
	TypeUserVerified   = "user.verified"
	TypeUserLogin      = "user.login"
	TypePasswordReset  = "user.password_reset"
)

// Event 审计事件。Email 同时作为 Kafka 消息键，保证同一用户的事件有序。
type Event struct {
	Type       string            `json:"type"`
	UserID     uint              `json:"user_id"`
	Email      string            `json:"email"`
	OccurredAt time.Time         `json:"occurred_at"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Publisher 发布审计事件。发布失败不应影响主流程，调用方只记录日志。
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewPublisher Kafka 未启用或无法连接时回退为日志发布器。
func NewPublisher(cfg config.KafkaConfig, lg *zap.Logger) Publisher {
	if lg == nil {
		lg = zap.NewNop()
	}
	if !cfg.Enabled {
		return NewLogPublisher(lg)
	}
	p, err := NewKafkaPublisher(cfg, lg)
	if err != nil {
		lg.Warn("⚠️ Kafka 不可用，事件将只写入日志", zap.Error(err))
		return NewLogPublisher(lg)
	}
	return p
}
