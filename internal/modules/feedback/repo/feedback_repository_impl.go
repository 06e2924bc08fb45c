package repo

import (
	"context"

	"leximind-server/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	items := make([]model.Feedback, 0)
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error
	return items, err
}

func (r *FeedbackRepository) MarkAllSeen(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("is_new = ?", true).
		Update("is_new", false).Error
}

// ToggleBookmark 单条 UPDATE 翻转收藏状态并清除新标记。
func (r *FeedbackRepository) ToggleBookmark(ctx context.Context, id uint) (*model.Feedback, error) {
	var item model.Feedback
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Feedback{}).Where("id = ?", id).Updates(map[string]interface{}{
			"is_bookmarked": gorm.Expr("NOT is_bookmarked"),
			"is_new":        false,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&item, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Feedback{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *FeedbackRepository) CountNew(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).Where("is_new = ?", true).Count(&count).Error
	return count, err
}
