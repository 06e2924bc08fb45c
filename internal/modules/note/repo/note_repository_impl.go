package repo

import (
	"context"

	"leximind-server/internal/model"

	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Note, error) {
	notes := make([]model.Note, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_pinned DESC").
		Order("updated_at DESC").
		Order("id DESC").
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) FindByIDAndOwner(ctx context.Context, id, userID uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Save(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Omit("User").Save(note).Error
}

func (r *NoteRepository) DeleteByIDAndOwner(ctx context.Context, id, userID uint) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Note{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *NoteRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Note{}).Count(&count).Error
	return count, err
}
