package cache

import (
	"context"
	"sync"
	"time"

	"leximind-server/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const localPruneThreshold = 4096

// IntervalLimiter 限制同一主体两次操作之间的最小间隔（如验证码重发）。
// Redis 可用时使用 SET NX EX 在多实例间共享状态，否则使用进程内 map。
type IntervalLimiter struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
	now    func() time.Time

	mu    sync.Mutex
	local map[string]time.Time
}

func NewIntervalLimiter(client *redis.Client, cfg config.RedisConfig, lg *zap.Logger) *IntervalLimiter {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &IntervalLimiter{
		client: client,
		prefix: cfg.Prefix,
		logger: lg,
		now:    time.Now,
		local:  make(map[string]time.Time),
	}
}

// Allow 若距离上次放行已超过 interval 则放行并记录本次时间。
func (l *IntervalLimiter) Allow(ctx context.Context, scope, subject string, interval time.Duration) bool {
	if l == nil || interval <= 0 {
		return true
	}
	key := Key(l.prefix, "interval", scope, subject)

	if l.client != nil {
		ok, err := l.client.SetNX(ctx, key, "1", interval).Result()
		if err == nil {
			return ok
		}
		l.logger.Warn("⚠️ Redis 间隔限流失败，回退到内存模式", zap.String("scope", scope), zap.Error(err))
	}
	return l.allowLocal(key, interval)
}

// Reset 清除主体的间隔记录，用于发送失败后允许立即重试。
func (l *IntervalLimiter) Reset(ctx context.Context, scope, subject string) {
	if l == nil {
		return
	}
	key := Key(l.prefix, "interval", scope, subject)
	if l.client != nil {
		_ = l.client.Del(ctx, key).Err()
	}
	l.mu.Lock()
	delete(l.local, key)
	l.mu.Unlock()
}

func (l *IntervalLimiter) allowLocal(key string, interval time.Duration) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if until, ok := l.local[key]; ok && now.Before(until) {
		return false
	}
	if len(l.local) >= localPruneThreshold {
		for k, until := range l.local {
			if !now.Before(until) {
				delete(l.local, k)
			}
		}
	}
	l.local[key] = now.Add(interval)
	return true
}
