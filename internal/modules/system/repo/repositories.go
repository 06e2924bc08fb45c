package repo

import (
	"context"

	"gorm.io/gorm"
)

// SystemStore 数据库层面的运行状态。
type SystemStore interface {
	Ping(ctx context.Context) error
	Dialect() string
}

func NewSystemRepository(db *gorm.DB) SystemStore {
	return &SystemRepository{db: db}
}
