package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"leximind-server/internal/consts"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 用于管理应用配置

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	OTP       OTPConfig       `mapstructure:"otp"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	OAuth     OAuthConfig     `mapstructure:"oauth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Captcha   CaptchaConfig   `mapstructure:"captcha"`
}

type ServerConfig struct {
	Port           string `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	ClientURL      string `mapstructure:"client_url"`
	CORSOrigins    string `mapstructure:"cors_origins"` // 逗号分隔
	Timezone       string `mapstructure:"timezone"`
	TrustedProxies string `mapstructure:"trusted_proxies"`
	MaxBodyMB      int    `mapstructure:"max_body_mb"`
}

type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	Issuer                 string `mapstructure:"issuer"`
	AdminExpirationHours   int    `mapstructure:"admin_expiration_hours"`
	UserExpirationHours    int    `mapstructure:"user_expiration_hours"`
	ResetExpirationMinutes int    `mapstructure:"reset_expiration_minutes"`
}

type OTPConfig struct {
	Length                int `mapstructure:"length"`
	TTLMinutes            int `mapstructure:"ttl_minutes"`
	ResendIntervalSeconds int `mapstructure:"resend_interval_seconds"`
}

type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	SSL      bool   `mapstructure:"ssl"`
}

type OAuthConfig struct {
	Google GoogleOAuthConfig `mapstructure:"google"`
}

type GoogleOAuthConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type KafkaConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Brokers     string `mapstructure:"brokers"` // 逗号分隔
	TopicPrefix string `mapstructure:"topic_prefix"`
}

type RateLimitConfig struct {
	Enabled   bool    `mapstructure:"enabled"`
	AuthRPS   float64 `mapstructure:"auth_rps"`
	AuthBurst int     `mapstructure:"auth_burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// CaptchaConfig 图形验证码，默认关闭。启用后注册、登录与发送验证码的接口需要先通过校验。
type CaptchaConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	Length     int  `mapstructure:"length"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

// Load 读取 .env、配置文件与环境变量，校验后存入全局快照并返回副本。
func Load(customConfigDir string) (*Config, error) {
	v, err := initViper(customConfigDir)
	if err != nil {
		return nil, err
	}
	cfg, err := loadAndStore(v)
	if err != nil {
		return nil, err
	}
	log.Println("✅ 配置加载成功")
	return cfg, nil
}

func initViper(customConfigDir string) (*viper.Viper, error) {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// .env 不存在时忽略，已存在的环境变量优先
	for _, envFile := range []string{filepath.Join(configDir, ".env"), ".env"} {
		if err := godotenv.Load(envFile); err == nil {
			log.Printf("✅ 已加载环境文件 %s", envFile)
		}
	}

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 配置环境变量覆盖
	// 规则：所有环境变量必须以 LEXIMIND_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 LEXIMIND_SERVER_PORT
	v.SetEnvPrefix(consts.EnvPrefix)
	v.AutomaticEnv()
	// server.port -> SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.client_url", "http://localhost:3000")
	v.SetDefault("server.cors_origins", "http://localhost:3000")
	v.SetDefault("server.timezone", "Local")
	v.SetDefault("server.trusted_proxies", "")
	v.SetDefault("server.max_body_mb", 2)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/leximind.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "leximind")
	v.SetDefault("database.ssl", false)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", consts.ApplicationName)
	v.SetDefault("jwt.admin_expiration_hours", 3)
	v.SetDefault("jwt.user_expiration_hours", 24)
	v.SetDefault("jwt.reset_expiration_minutes", 15)

	v.SetDefault("otp.length", 6)
	v.SetDefault("otp.ttl_minutes", 5)
	v.SetDefault("otp.resend_interval_seconds", 60)

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.from_name", "LexiMind")
	v.SetDefault("smtp.ssl", false)

	v.SetDefault("oauth.google.enabled", false)
	v.SetDefault("oauth.google.client_id", "")
	v.SetDefault("oauth.google.client_secret", "")
	v.SetDefault("oauth.google.redirect_url", "http://localhost:8080/auth/google/callback")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "leximind")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", "127.0.0.1:9092")
	v.SetDefault("kafka.topic_prefix", "leximind")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.auth_rps", 5)
	v.SetDefault("rate_limit.auth_burst", 10)

	v.SetDefault("log.level", "")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("captcha.enabled", false)
	v.SetDefault("captcha.length", 4)
	v.SetDefault("captcha.ttl_seconds", 300)
}

// loadAndStore 解析、校验并原子更新配置
func loadAndStore(v *viper.Viper) (*Config, error) {
	// 加写锁，防止并发重载时的竞争
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		return nil, fmt.Errorf("配置解析失败: %w", err)
	}

	if err := enforceJWTSecretSafety(&tempConfig); err != nil {
		return nil, err
	}

	appConfig.Store(&tempConfig)
	cp := tempConfig
	return &cp, nil
}

func enforceJWTSecretSafety(cfg *Config) error {
	if cfg.Server.Mode == "release" {
		if cfg.JWT.Secret == "" || cfg.JWT.Secret == consts.DevJWTSecret {
			return errors.New("❌ [安全严重错误] 生产模式(release)下必须设置安全的 JWT Secret！请设置环境变量 LEXIMIND_JWT_SECRET 或在配置文件中指定 jwt.secret")
		}
		return nil
	}
	if cfg.JWT.Secret == "" {
		log.Println("⚠️ [开发模式警告] 未设置 JWT Secret，将使用默认不安全密钥进行开发")
		cfg.JWT.Secret = consts.DevJWTSecret
	}
	return nil
}

// SplitList 解析逗号分隔的配置项，忽略空白项。
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Location 返回统计日界使用的时区，无法识别时回退到本地时区。
func (s ServerConfig) Location() *time.Location {
	name := strings.TrimSpace(s.Timezone)
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("⚠️ 无法识别时区 %q，使用本地时区: %v", name, err)
		return time.Local
	}
	return loc
}
