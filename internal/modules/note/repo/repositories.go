package repo

import (
	"context"

	"leximind-server/internal/model"

	"gorm.io/gorm"
)

// NoteStore 笔记存储。所有按 ID 的操作都带上所有者条件。
type NoteStore interface {
	Create(ctx context.Context, note *model.Note) error
	ListByOwner(ctx context.Context, userID uint) ([]model.Note, error)
	FindByIDAndOwner(ctx context.Context, id, userID uint) (*model.Note, error)
	Save(ctx context.Context, note *model.Note) error
	DeleteByIDAndOwner(ctx context.Context, id, userID uint) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

func NewNoteRepository(db *gorm.DB) NoteStore {
	return &NoteRepository{db: db}
}
