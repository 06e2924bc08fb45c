package repo

import (
	"context"

	"leximind-server/internal/model"

	"gorm.io/gorm"
)

type ListPostsParams struct {
	PublishedOnly bool
	Category      string
}

type PostStore interface {
	Create(ctx context.Context, post *model.BlogPost) error
	List(ctx context.Context, params ListPostsParams) ([]model.BlogPost, error)
	FindByID(ctx context.Context, id uint, publishedOnly bool) (*model.BlogPost, error)
	Save(ctx context.Context, post *model.BlogPost) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountAll(ctx context.Context) (int64, error)
}

func NewPostRepository(db *gorm.DB) PostStore {
	return &PostRepository{db: db}
}
