package repo

import (
	"context"

	"leximind-server/internal/model"
	"leximind-server/internal/modules/stats/dto"

	"gorm.io/gorm"
)

// LedgerStore 登录统计台账。日期均为 YYYY-MM-DD 字符串，区间为闭区间。
type LedgerStore interface {
	// Record 原子地累加当日总数与该邮箱的当日次数，并只保留最近登录的 keep 条明细。
	Record(ctx context.Context, date, email string, atMillis int64, keep int) error
	DayTotals(ctx context.Context, from, to string) ([]model.LoginDay, error)
	UserTotals(ctx context.Context, from, to string) ([]dto.UserCount, error)
}

func NewLedgerRepository(db *gorm.DB) LedgerStore {
	return &LedgerRepository{db: db}
}
