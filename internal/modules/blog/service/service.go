package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/blog/dto"
	"leximind-server/internal/modules/blog/repo"
	platformservice "leximind-server/internal/platform/service"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errPostNotFound = platformservice.NewNotFoundError("Blog post not found")

type Service struct {
	*platformservice.AppService
	postStore repo.PostStore
}

func New(appService *platformservice.AppService, postStore repo.PostStore) *Service {
	return &Service{AppService: appService, postStore: postStore}
}

// Create 管理员发布文章，显式传 isPublished=false 时保存为草稿。
func (s *Service) Create(ctx context.Context, authorID uint, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	title := strings.TrimSpace(req.Title)
	category := strings.TrimSpace(req.Category)
	if title == "" || strings.TrimSpace(req.Content) == "" || category == "" {
		return nil, platformservice.NewValidationError("Title, content and category are required")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	post := &model.BlogPost{
		Title:       title,
		Content:     req.Content,
		Category:    category,
		Tags:        normalizeTags(req.Tags),
		IsPublished: published,
		PostedByID:  authorID,
	}
	if err := s.postStore.Create(ctx, post); err != nil {
		return nil, platformservice.WrapInternal("Error creating blog post", err)
	}
	s.Log().Info("📰 文章已创建", zap.Uint("post_id", post.ID), zap.Bool("published", post.IsPublished))
	resp := dto.NewPostResponse(*post)
	return &resp, nil
}

// ListAll 后台列表，包含草稿。
func (s *Service) ListAll(ctx context.Context) ([]dto.PostResponse, error) {
	return s.list(ctx, repo.ListPostsParams{})
}

// ListPublished 公开列表，只含已发布文章，最新在前。
func (s *Service) ListPublished(ctx context.Context, q dto.ListQuery) ([]dto.PostResponse, error) {
	return s.list(ctx, repo.ListPostsParams{PublishedOnly: true, Category: strings.TrimSpace(q.Category)})
}

// GetForAdmin 后台查看任意文章。
func (s *Service) GetForAdmin(ctx context.Context, id uint) (*dto.PostResponse, error) {
	return s.get(ctx, id, false)
}

// GetPublished 未发布的文章对公众不可见。
func (s *Service) GetPublished(ctx context.Context, id uint) (*dto.PostResponse, error) {
	return s.get(ctx, id, true)
}

func (s *Service) Update(ctx context.Context, id uint, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.find(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, platformservice.NewValidationError("Title is required")
		}
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		post.Title = title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, platformservice.NewValidationError("Content is required")
		}
		post.Content = *req.Content
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, platformservice.NewValidationError("Category is required")
		}
		post.Category = category
	}
	if req.Tags != nil {
		post.Tags = normalizeTags(*req.Tags)
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := s.postStore.Save(ctx, post); err != nil {
		return nil, platformservice.WrapInternal("Error updating blog post", err)
	}
	resp := dto.NewPostResponse(*post)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.postStore.Delete(ctx, id)
	if err != nil {
		return platformservice.WrapInternal("Error deleting blog post", err)
	}
	if !deleted {
		return errPostNotFound
	}
	return nil
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.postStore.CountAll(ctx)
}

func (s *Service) list(ctx context.Context, params repo.ListPostsParams) ([]dto.PostResponse, error) {
	posts, err := s.postStore.List(ctx, params)
	if err != nil {
		return nil, platformservice.WrapInternal("Error fetching blog posts", err)
	}
	return lo.Map(posts, func(post model.BlogPost, _ int) dto.PostResponse {
		return dto.NewPostResponse(post)
	}), nil
}

func (s *Service) get(ctx context.Context, id uint, publishedOnly bool) (*dto.PostResponse, error) {
	post, err := s.find(ctx, id, publishedOnly)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPostResponse(*post)
	return &resp, nil
}

func (s *Service) find(ctx context.Context, id uint, publishedOnly bool) (*model.BlogPost, error) {
	post, err := s.postStore.FindByID(ctx, id, publishedOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errPostNotFound
		}
		return nil, platformservice.WrapInternal("Error fetching blog post", err)
	}
	return post, nil
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) > consts.MaxBlogTitleRunes {
		return platformservice.NewValidationError("Title cannot exceed 200 characters")
	}
	return nil
}

func normalizeTags(raw []string) []string {
	tags := lo.Uniq(lo.FilterMap(raw, func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	}))
	if len(tags) > consts.MaxTagCount {
		tags = tags[:consts.MaxTagCount]
	}
	return tags
}
