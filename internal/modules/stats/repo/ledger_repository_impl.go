package repo

import (
	"context"

	"leximind-server/internal/model"
	"leximind-server/internal/modules/stats/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct {
	db *gorm.DB
}

func (r *LedgerRepository) Record(ctx context.Context, date, email string, atMillis int64, keep int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		day := model.LoginDay{Date: date, Total: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total": gorm.Expr("login_days.total + ?", 1),
			}),
		}).Create(&day).Error; err != nil {
			return err
		}

		entry := model.LoginDayEntry{Date: date, Email: email, LoginCount: 1, LastLoginAt: atMillis}
		assignments := clause.Assignments(map[string]interface{}{
			"login_count": gorm.Expr("login_day_entries.login_count + ?", 1),
		})
		assignments = append(assignments, clause.AssignmentColumns([]string{"last_login_at"})...)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "email"}},
			DoUpdates: assignments,
		}).Create(&entry).Error; err != nil {
			return err
		}

		return evictOverflow(tx, date, keep)
	})
}

// evictOverflow 删除当日最久未登录的明细，使条数不超过 keep。
func evictOverflow(tx *gorm.DB, date string, keep int) error {
	if keep <= 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&model.LoginDayEntry{}).Where("date = ?", date).Count(&count).Error; err != nil {
		return err
	}
	overflow := int(count) - keep
	if overflow <= 0 {
		return nil
	}

	var ids []uint
	if err := tx.Model(&model.LoginDayEntry{}).
		Where("date = ?", date).
		Order("last_login_at asc").Order("id asc").
		Limit(overflow).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("id IN ?", ids).Delete(&model.LoginDayEntry{}).Error
}

func (r *LedgerRepository) DayTotals(ctx context.Context, from, to string) ([]model.LoginDay, error) {
	var days []model.LoginDay
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *LedgerRepository) UserTotals(ctx context.Context, from, to string) ([]dto.UserCount, error) {
	var rows []dto.UserCount
	if err := r.db.WithContext(ctx).Model(&model.LoginDayEntry{}).
		Select("email, SUM(login_count) AS count").
		Where("date >= ? AND date <= ?", from, to).
		Group("email").
		Order("email asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
