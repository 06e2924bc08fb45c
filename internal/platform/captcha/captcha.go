package captcha

import (
	"strings"
	"time"

	"leximind-server/internal/config"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// ProviderDisabled 未启用验证码，所有校验直接通过。
	ProviderDisabled = "disabled"
	// ProviderImage 数字图形验证码。
	ProviderImage = "image"

	memoryStoreCapacity = 10240
)

// Service 图形验证码的生成与校验。
type Service struct {
	enabled bool
	store   base64Captcha.Store
	captcha *base64Captcha.Captcha
}

// New Redis 可用时验证码答案存入 Redis，多实例共享；否则保存在进程内。
func New(cfg config.CaptchaConfig, client *redis.Client, redisCfg config.RedisConfig, lg *zap.Logger) *Service {
	if lg == nil {
		lg = zap.NewNop()
	}
	ttl := ttlOf(cfg)
	memory := base64Captcha.NewMemoryStore(memoryStoreCapacity, ttl)

	var store base64Captcha.Store = memory
	if client != nil {
		store = newRedisStore(client, redisCfg.Prefix, ttl, memory, lg)
	}
	if cfg.Enabled {
		lg.Info("✅ 图形验证码已启用", zap.Bool("redis", client != nil))
	}
	return NewWithStore(cfg, store)
}

// NewWithStore 使用指定存储构建验证码服务。
func NewWithStore(cfg config.CaptchaConfig, store base64Captcha.Store) *Service {
	length := cfg.Length
	if length <= 0 {
		length = 4
	}
	// 高 80，宽 240，最大倾斜 0.7，背景圆点 80 个
	driver := base64Captcha.NewDriverDigit(80, 240, length, 0.7, 80)
	return &Service{
		enabled: cfg.Enabled,
		store:   store,
		captcha: base64Captcha.NewCaptcha(driver, store),
	}
}

func (s *Service) Enabled() bool {
	return s != nil && s.enabled
}

// Provider 返回前端应展示的验证码类型。
func (s *Service) Provider() string {
	if !s.Enabled() {
		return ProviderDisabled
	}
	return ProviderImage
}

// Generate 生成验证码，image 为 data URI 形式的 base64 图片。
func (s *Service) Generate() (id, image string, err error) {
	id, image, _, err = s.captcha.Generate()
	return id, image, err
}

// Verify 校验并作废验证码。未启用时恒为 true，空 ID 或空答案恒为 false。
func (s *Service) Verify(id, answer string) bool {
	if !s.Enabled() {
		return true
	}
	id = strings.TrimSpace(id)
	answer = strings.TrimSpace(answer)
	if id == "" || answer == "" {
		return false
	}
	return s.store.Verify(id, answer, true)
}

func ttlOf(cfg config.CaptchaConfig) time.Duration {
	if cfg.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(cfg.TTLSeconds) * time.Second
}
