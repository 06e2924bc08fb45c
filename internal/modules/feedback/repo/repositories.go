package repo

import (
	"context"

	"leximind-server/internal/model"

	"gorm.io/gorm"
)

type FeedbackStore interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	List(ctx context.Context) ([]model.Feedback, error)
	MarkAllSeen(ctx context.Context) error
	ToggleBookmark(ctx context.Context, id uint) (*model.Feedback, error)
	Delete(ctx context.Context, id uint) (bool, error)
	CountNew(ctx context.Context) (int64, error)
}

func NewFeedbackRepository(db *gorm.DB) FeedbackStore {
	return &FeedbackRepository{db: db}
}
