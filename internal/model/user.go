package model

import "time"

type User struct {
	ID        uint      `json:"_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username  string    `json:"username" gorm:"size:100;not null"`
	// Password 为空表示仅能通过 OAuth 登录
	Password   string `json:"-"`
	Image      string `json:"image" gorm:"size:1024"`
	IsAdmin    bool   `json:"isAdmin" gorm:"not null;default:false"`
	IsVerified bool   `json:"isVerified" gorm:"not null;default:false"`

	// 验证码及过期时间 (Unix 毫秒，0 表示无待验证的验证码)
	SignupOTP          string `json:"-" gorm:"size:16"`
	SignupOTPExpiresAt int64  `json:"-" gorm:"not null;default:0"`
	ResetOTP           string `json:"-" gorm:"size:16"`
	ResetOTPExpiresAt  int64  `json:"-" gorm:"not null;default:0"`

	// TokensValidAfter 撤销水位线 (Unix 毫秒)，不晚于该时刻签发的登录令牌一律视为过期
	TokensValidAfter int64 `json:"-" gorm:"not null;default:0"`
}

// CanPasswordLogin 只有已验证且设置了密码的身份可以使用密码登录。
func (u *User) CanPasswordLogin() bool {
	return u != nil && u.IsVerified && u.Password != ""
}
