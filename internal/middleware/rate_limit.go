package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"leximind-server/internal/config"
	"leximind-server/internal/logger"
	"leximind-server/internal/platform/cache"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL      = 3 * time.Minute
	limiterCleanupEvery = time.Minute
	redisWindow         = time.Minute
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (c *client) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

func (c *client) idleSince(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return now.Sub(c.lastSeen)
}

// NewIPRateLimiter 按 IP 维护令牌桶，ctx 结束时停止清理协程。
func NewIPRateLimiter(ctx context.Context, r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{r: r, b: b}
	go i.cleanupLoop(ctx)
	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now()
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch(now)
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch(now)
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: now})
	return limiter
}

// Allow 消耗该 IP 的一个令牌。
func (i *IPRateLimiter) Allow(ip string) bool {
	return i.getLimiter(ip).Allow()
}

func (i *IPRateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			i.ips.Range(func(key, value interface{}) bool {
				if value.(*client).idleSince(now) > limiterIdleTTL {
					i.ips.Delete(key)
				}
				return true
			})
		}
	}
}

// RateLimit 认证接口的 IP 限流。Redis 可用时按分钟固定窗口跨实例计数，
// 否则或 Redis 出错时回退到进程内令牌桶。
func RateLimit(ctx context.Context, cfg config.RateLimitConfig, client *redis.Client, redisPrefix, scope string) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	local := NewIPRateLimiter(ctx, rate.Limit(cfg.AuthRPS), cfg.AuthBurst)
	perWindow := windowLimit(cfg.AuthRPS, cfg.AuthBurst)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		ip := c.ClientIP()

		var allowed bool
		if client != nil {
			ok, err := allowByRedisWindow(c.Request.Context(), client, redisPrefix, scope, ip, perWindow, time.Now())
			if err == nil {
				allowed = ok
			} else {
				zap.L().Warn("⚠️ Redis 限流失败，回退内存限流", zap.Error(err))
				allowed = local.Allow(ip)
			}
		} else {
			allowed = local.Allow(ip)
		}

		if !allowed {
			zap.L().Info("🚦 请求被限流", zap.String("scope", scope), zap.String("ip", logger.MaskIP(ip)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}

// windowLimit 把令牌桶参数换算为每个窗口允许的请求数。
func windowLimit(rps float64, burst int) int64 {
	if rps <= 0 && burst <= 0 {
		return 0
	}
	n := int64(math.Ceil(rps*redisWindow.Seconds())) + int64(burst)
	if n < 1 {
		n = 1
	}
	return n
}

func allowByRedisWindow(ctx context.Context, client *redis.Client, prefix, scope, ip string, limit int64, now time.Time) (bool, error) {
	if limit <= 0 {
		return false, nil
	}
	bucket := now.Unix() / int64(redisWindow.Seconds())
	key := cache.Key(prefix, "rate", scope, ip, strconv.FormatInt(bucket, 10))

	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	pipe := client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, redisWindow+5*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= limit, nil
}
