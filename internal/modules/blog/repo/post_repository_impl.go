package repo

import (
	"context"

	"leximind-server/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.BlogPost) error {
	if err := r.db.WithContext(ctx).Omit("PostedBy").Create(post).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).First(&post.PostedBy, post.PostedByID).Error
}

func (r *PostRepository) List(ctx context.Context, params ListPostsParams) ([]model.BlogPost, error) {
	query := r.db.WithContext(ctx).Model(&model.BlogPost{}).Preload("PostedBy")
	if params.PublishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	posts := make([]model.BlogPost, 0)
	err := query.Order("created_at DESC").Order("id DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByID(ctx context.Context, id uint, publishedOnly bool) (*model.BlogPost, error) {
	query := r.db.WithContext(ctx).Preload("PostedBy").Where("id = ?", id)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	var post model.BlogPost
	if err := query.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Save(ctx context.Context, post *model.BlogPost) error {
	return r.db.WithContext(ctx).Omit("PostedBy").Save(post).Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&model.BlogPost{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *PostRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlogPost{}).Count(&count).Error
	return count, err
}
