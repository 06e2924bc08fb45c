package consts

import "time"

const (
	// ApplicationName 程序名称，同时用作 CLI 命令名。
	ApplicationName = "leximind-server"
	// ApplicationVersion 版本号。
	ApplicationVersion = "1.0.0"

	// EnvPrefix 环境变量前缀，例如 LEXIMIND_SERVER_PORT。
	EnvPrefix = "LEXIMIND"

	// DevJWTSecret 非 release 模式下未配置密钥时使用的开发密钥。
	DevJWTSecret = "leximind_dev_secret"
)

const (
	// MaxNoteTitleRunes 笔记标题最大长度。
	MaxNoteTitleRunes = 100
	// MaxUsernameRunes 用户名（展示名）最大长度。
	MaxUsernameRunes = 50
	// MaxBlogTitleRunes 博客标题最大长度。
	MaxBlogTitleRunes = 200
	// MaxTagCount 单条记录允许的标签数。
	MaxTagCount = 20
)

const (
	// MaxLedgerEntriesPerDay 每日登录明细保留的最大条数，超出按最近登录时间淘汰。
	MaxLedgerEntriesPerDay = 1000
	// MaxStatsRangeDays 统计查询允许的最大跨度（天）。
	MaxStatsRangeDays = 366
	// DateLayout 统计日期格式。
	DateLayout = "2006-01-02"
)

const (
	// OAuthStateCookie OAuth state 存放的 cookie 名。
	OAuthStateCookie = "oauth_state"
	// OAuthStateTTL state cookie 有效期。
	OAuthStateTTL = 10 * time.Minute
)
