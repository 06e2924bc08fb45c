package captcha

import (
	"context"
	"errors"
	"time"

	"leximind-server/internal/platform/cache"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisOpTimeout = time.Second

// redisStore 实现 base64Captcha.Store。Redis 出错时回退到进程内存储。
type redisStore struct {
	client   *redis.Client
	prefix   string
	ttl      time.Duration
	fallback base64Captcha.Store
	logger   *zap.Logger
}

func newRedisStore(client *redis.Client, prefix string, ttl time.Duration, fallback base64Captcha.Store, lg *zap.Logger) *redisStore {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &redisStore{client: client, prefix: prefix, ttl: ttl, fallback: fallback, logger: lg}
}

func (s *redisStore) key(id string) string {
	return cache.Key(s.prefix, "captcha", id)
}

func (s *redisStore) Set(id, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := s.client.Set(ctx, s.key(id), value, s.ttl).Err(); err != nil {
		s.logger.Warn("⚠️ Redis 保存验证码失败，回退到内存模式", zap.Error(err))
		return s.fallback.Set(id, value)
	}
	return nil
}

func (s *redisStore) Get(id string, clear bool) string {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	var (
		value string
		err   error
	)
	if clear {
		value, err = s.client.GetDel(ctx, s.key(id)).Result()
	} else {
		value, err = s.client.Get(ctx, s.key(id)).Result()
	}
	if err == nil {
		return value
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Warn("⚠️ Redis 读取验证码失败，回退到内存模式", zap.Error(err))
	}
	return s.fallback.Get(id, clear)
}

func (s *redisStore) Verify(id, answer string, clear bool) bool {
	if id == "" || answer == "" {
		return false
	}
	value := s.Get(id, clear)
	return value != "" && value == answer
}
