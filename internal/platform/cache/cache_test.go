package cache

import (
	"context"
	"testing"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/testutils"

	"github.com/redis/go-redis/v9"
)

// 测试内容：验证未启用 Redis 时返回 nil 客户端。
func TestNewRedisClient_Disabled(t *testing.T) {
	if c := NewRedisClient(config.RedisConfig{Enabled: false}, nil); c != nil {
		t.Fatalf("期望未启用时返回 nil")
	}
}

// 测试内容：验证 Redis 不可达时降级为 nil。
func TestNewRedisClient_Unreachable(t *testing.T) {
	if c := NewRedisClient(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}, nil); c != nil {
		t.Fatalf("期望不可达时返回 nil")
	}
}

func TestKey(t *testing.T) {
	if got := Key("app", "otp", "a@b.c"); got != "app:otp:a@b.c" {
		t.Fatalf("Key 结果不符合预期: %s", got)
	}
	if got := Key("", "x"); got != "leximind:x" {
		t.Fatalf("空前缀应使用默认前缀，实际为 %s", got)
	}
}

// 测试内容：验证内存模式下间隔内重复请求被拒绝，间隔过后放行，且不同主体互不影响。
func TestIntervalLimiter_Local(t *testing.T) {
	clock := testutils.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewIntervalLimiter(nil, config.RedisConfig{Prefix: "t"}, nil)
	l.now = clock.Now
	ctx := context.Background()

	if !l.Allow(ctx, "otp", "a", time.Minute) {
		t.Fatalf("首次请求应放行")
	}
	if l.Allow(ctx, "otp", "a", time.Minute) {
		t.Fatalf("间隔内重复请求应被拒绝")
	}
	if !l.Allow(ctx, "otp", "b", time.Minute) {
		t.Fatalf("不同主体不应互相影响")
	}
	clock.Advance(time.Minute)
	if !l.Allow(ctx, "otp", "a", time.Minute) {
		t.Fatalf("间隔过后应放行")
	}
	l.Reset(ctx, "otp", "a")
	if !l.Allow(ctx, "otp", "a", time.Minute) {
		t.Fatalf("重置后应放行")
	}
}

// 测试内容：验证 Redis 不可用时回退到内存模式而不是直接放行。
func TestIntervalLimiter_RedisErrorFallsBack(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	defer func() { _ = client.Close() }()

	l := NewIntervalLimiter(client, config.RedisConfig{}, nil)
	ctx := context.Background()
	if !l.Allow(ctx, "otp", "a", time.Minute) {
		t.Fatalf("首次请求应放行")
	}
	if l.Allow(ctx, "otp", "a", time.Minute) {
		t.Fatalf("回退后仍应执行间隔限制")
	}
}

// 测试内容：验证零间隔与 nil 限流器直接放行。
func TestIntervalLimiter_Disabled(t *testing.T) {
	var l *IntervalLimiter
	if !l.Allow(context.Background(), "otp", "a", time.Minute) {
		t.Fatalf("nil 限流器应放行")
	}
	l = NewIntervalLimiter(nil, config.RedisConfig{}, nil)
	for i := 0; i < 3; i++ {
		if !l.Allow(context.Background(), "otp", "a", 0) {
			t.Fatalf("零间隔应放行")
		}
	}
}
