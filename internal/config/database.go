package config

import "fmt"

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
}

// DSN 按数据库类型拼接连接串。timezone 仅对 postgres 生效。
func (d DatabaseConfig) DSN(timezone string) string {
	switch d.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, d.Port, d.Name)
		if d.SSL {
			dsn += "&tls=true"
		}
		return dsn
	case "postgres":
		sslMode := "disable"
		if d.SSL {
			sslMode = "require"
		}
		if timezone == "" || timezone == "Local" {
			timezone = "UTC"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			d.Host, d.User, d.Password, d.Name, d.Port, sslMode, timezone)
	default:
		// 启用 WAL 模式和繁忙等待，提升 SQLite 并发性能
		return d.Filename + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
}
