package utils

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"leximind-server/internal/consts"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

// MinPasswordEntropyBits 密码最低熵值。
const MinPasswordEntropyBits = 50

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// NormalizeEmail 去除首尾空白并转小写，所有身份查找都以此为键。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail 要求传入已规范化的邮箱。
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return false, "Invalid email address"
	}
	return true, ""
}

// ValidateUsername 用户名为展示名，允许空格与非 ASCII 字符。
func ValidateUsername(username string) (bool, string) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, "Username is required"
	}
	if utf8.RuneCountInString(username) > consts.MaxUsernameRunes {
		return false, "Username is too long"
	}
	return true, ""
}

// ValidatePassword checks if the password meets the requirements.
// Returns true if valid, otherwise false and an error message.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	if len(password) > 72 {
		// bcrypt 只使用前 72 字节
		return false, "Password must be at most 72 bytes"
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return false, "Password must contain at least one letter and one number"
	}
	if err := passwordvalidator.Validate(password, MinPasswordEntropyBits); err != nil {
		return false, err.Error()
	}
	return true, ""
}
