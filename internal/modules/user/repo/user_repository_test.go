package repo

import (
	"context"
	"errors"
	"testing"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/testutils"

	"gorm.io/gorm"
)

func newUser(t *testing.T, store UserStore, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Username: "u", Password: "hash"}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// 测试内容：验证按邮箱查找与唯一约束。
func TestUserRepository_FindAndUnique(t *testing.T) {
	store := NewUserRepository(testutils.SetupDB(t))
	ctx := context.Background()
	u := newUser(t, store, "alice@example.com")

	got, err := store.FindByEmail(ctx, "alice@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("期望按邮箱找到用户，实际为 %v %v", got, err)
	}
	if _, err := store.FindByEmail(ctx, "bob@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望 ErrRecordNotFound，实际为 %v", err)
	}
	if err := store.Create(ctx, &model.User{Email: "alice@example.com", Username: "dup"}); err == nil {
		t.Fatalf("期望重复邮箱创建失败")
	}
	if n, _ := store.CountAll(ctx); n != 1 {
		t.Fatalf("期望 1 个用户，实际为 %d", n)
	}
}

// 测试内容：验证写入一种用途的验证码会清除另一种用途的验证码。
func TestUserRepository_SetOTPClearsOtherPurpose(t *testing.T) {
	store := NewUserRepository(testutils.SetupDB(t))
	ctx := context.Background()
	u := newUser(t, store, "alice@example.com")

	if err := store.SetOTP(ctx, u.ID, consts.OTPPurposeSignup, "111111", 1000); err != nil {
		t.Fatalf("SetOTP: %v", err)
	}
	if err := store.SetOTP(ctx, u.ID, consts.OTPPurposeReset, "222222", 2000); err != nil {
		t.Fatalf("SetOTP: %v", err)
	}
	got, _ := store.FindByID(ctx, u.ID)
	if got.SignupOTP != "" || got.SignupOTPExpiresAt != 0 {
		t.Fatalf("期望注册验证码被清除，实际为 %q/%d", got.SignupOTP, got.SignupOTPExpiresAt)
	}
	if got.ResetOTP != "222222" || got.ResetOTPExpiresAt != 2000 {
		t.Fatalf("期望写入重置验证码，实际为 %q/%d", got.ResetOTP, got.ResetOTPExpiresAt)
	}
}

// 测试内容：验证码只能消费一次，过期或不匹配时不命中。
func TestUserRepository_ConsumeOTP(t *testing.T) {
	store := NewUserRepository(testutils.SetupDB(t))
	ctx := context.Background()
	u := newUser(t, store, "alice@example.com")
	if err := store.SetOTP(ctx, u.ID, consts.OTPPurposeSignup, "123456", 5000); err != nil {
		t.Fatalf("SetOTP: %v", err)
	}

	if ok, _ := store.ConsumeOTP(ctx, u.ID, consts.OTPPurposeSignup, "000000", 1000, nil); ok {
		t.Fatalf("错误验证码不应命中")
	}
	if ok, _ := store.ConsumeOTP(ctx, u.ID, consts.OTPPurposeSignup, "123456", 5001, nil); ok {
		t.Fatalf("过期验证码不应命中")
	}
	if ok, _ := store.ConsumeOTP(ctx, u.ID, consts.OTPPurposeReset, "123456", 1000, nil); ok {
		t.Fatalf("用途不匹配不应命中")
	}
	ok, err := store.ConsumeOTP(ctx, u.ID, consts.OTPPurposeSignup, "123456", 5000, map[string]interface{}{"is_verified": true})
	if err != nil || !ok {
		t.Fatalf("期望命中，实际为 ok=%v err=%v", ok, err)
	}
	if ok, _ := store.ConsumeOTP(ctx, u.ID, consts.OTPPurposeSignup, "123456", 1000, nil); ok {
		t.Fatalf("验证码不应被消费两次")
	}

	got, _ := store.FindByID(ctx, u.ID)
	if !got.IsVerified || got.SignupOTP != "" {
		t.Fatalf("期望已验证且验证码清空，实际为 %+v", got)
	}
}

// 测试内容：验证更新不存在的用户返回 ErrRecordNotFound。
func TestUserRepository_UpdateFieldsMissing(t *testing.T) {
	store := NewUserRepository(testutils.SetupDB(t))
	err := store.UpdateFields(context.Background(), 42, map[string]interface{}{"username": "x"})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望 ErrRecordNotFound，实际为 %v", err)
	}
}
