package service

import (
	"context"
	"errors"
	"strings"

	"leximind-server/internal/logger"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/feedback/repo"
	platformservice "leximind-server/internal/platform/service"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errFeedbackNotFound = platformservice.NewNotFoundError("Feedback not found")

type Service struct {
	*platformservice.AppService
	feedbackStore repo.FeedbackStore
}

func New(appService *platformservice.AppService, feedbackStore repo.FeedbackStore) *Service {
	return &Service{AppService: appService, feedbackStore: feedbackStore}
}

// Submit 记录当前用户提交的反馈，邮箱与用户名取自身份。
func (s *Service) Submit(ctx context.Context, author *model.User, content string) (*model.Feedback, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, platformservice.NewValidationError("Content is required")
	}

	item := &model.Feedback{
		Content:  content,
		Email:    author.Email,
		Username: author.Username,
		IsNew:    true,
	}
	if err := s.feedbackStore.Create(ctx, item); err != nil {
		return nil, platformservice.WrapInternal("Error submitting feedback", err)
	}
	s.Log().Info("💬 收到新反馈", zap.String("email", logger.MaskEmail(author.Email)))
	return item, nil
}

// ListAndMarkSeen 返回全部反馈（最新在前），随后全部标记为已读。
// 返回的数据保留读取时的新标记，便于前端高亮。
func (s *Service) ListAndMarkSeen(ctx context.Context) ([]model.Feedback, error) {
	items, err := s.feedbackStore.List(ctx)
	if err != nil {
		return nil, platformservice.WrapInternal("Error fetching feedback", err)
	}
	if err := s.feedbackStore.MarkAllSeen(ctx); err != nil {
		s.Log().Warn("⚠️ 标记反馈已读失败", zap.Error(err))
	}
	return items, nil
}

func (s *Service) ToggleBookmark(ctx context.Context, id uint) (*model.Feedback, error) {
	item, err := s.feedbackStore.ToggleBookmark(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errFeedbackNotFound
		}
		return nil, platformservice.WrapInternal("Error updating feedback", err)
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.feedbackStore.Delete(ctx, id)
	if err != nil {
		return platformservice.WrapInternal("Error deleting feedback", err)
	}
	if !deleted {
		return errFeedbackNotFound
	}
	return nil
}

func (s *Service) CountNew(ctx context.Context) (int64, error) {
	count, err := s.feedbackStore.CountNew(ctx)
	if err != nil {
		return 0, platformservice.WrapInternal("Error counting feedback", err)
	}
	return count, nil
}
