package cache

import (
	"context"
	"strings"
	"time"

	"leximind-server/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 未启用或连接失败时返回 nil，调用方需回退到进程内实现。
func NewRedisClient(cfg config.RedisConfig, lg *zap.Logger) *redis.Client {
	if lg == nil {
		lg = zap.NewNop()
	}
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		lg.Warn("⚠️ Redis 不可用，降级为内存模式", zap.String("addr", cfg.Addr), zap.Error(err))
		return nil
	}

	lg.Info("✅ Redis 已连接", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client
}

// Key 基于前缀拼接 Redis 键名，例如 leximind:otp:resend:alice@example.com
func Key(prefix string, parts ...string) string {
	if prefix == "" {
		prefix = "leximind"
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}
