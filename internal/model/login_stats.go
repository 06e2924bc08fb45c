package model

// LoginDay 某一天的普通用户登录总次数。Date 格式为 YYYY-MM-DD（服务器时区）。
type LoginDay struct {
	ID    uint   `gorm:"primaryKey"`
	Date  string `gorm:"size:10;not null;uniqueIndex"`
	Total int64  `gorm:"not null;default:0"`
}

// LoginDayEntry 某一天某个邮箱的登录次数，每天最多保留最近登录的一批记录。
type LoginDayEntry struct {
	ID          uint   `gorm:"primaryKey"`
	Date        string `gorm:"size:10;not null;uniqueIndex:idx_login_day_email,priority:1"`
	Email       string `gorm:"size:255;not null;uniqueIndex:idx_login_day_email,priority:2"`
	LoginCount  int64  `gorm:"not null;default:0"`
	LastLoginAt int64  `gorm:"not null;index"` // Unix 毫秒
}

// All 返回需要自动迁移的全部模型。
func All() []any {
	return []any{
		&User{},
		&Note{},
		&BlogPost{},
		&Feedback{},
		&LoginDay{},
		&LoginDayEntry{},
	}
}
