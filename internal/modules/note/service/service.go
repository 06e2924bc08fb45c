package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/note/dto"
	"leximind-server/internal/modules/note/repo"
	platformservice "leximind-server/internal/platform/service"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errNoteNotFound = platformservice.NewNotFoundError("Note not found")

type Service struct {
	*platformservice.AppService
	noteStore repo.NoteStore
}

func New(appService *platformservice.AppService, noteStore repo.NoteStore) *Service {
	return &Service{AppService: appService, noteStore: noteStore}
}

// Create 为当前用户新建笔记。
func (s *Service) Create(ctx context.Context, ownerID uint, req dto.CreateNoteRequest) (*model.Note, error) {
	title, err := validateTitle(req.Title)
	if err != nil {
		return nil, err
	}
	tags, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		UserID:   ownerID,
		Title:    title,
		Content:  req.Content,
		Tags:     tags,
		IsPinned: req.IsPinned,
	}
	if err := s.noteStore.Create(ctx, note); err != nil {
		return nil, platformservice.WrapInternal("Error creating note", err)
	}
	s.Log().Debug("📝 笔记已创建", zap.Uint("note_id", note.ID), zap.Uint("user_id", ownerID))
	return note, nil
}

// List 返回当前用户的全部笔记，置顶在前。
func (s *Service) List(ctx context.Context, ownerID uint) (*dto.NoteListResponse, error) {
	notes, err := s.noteStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, platformservice.WrapInternal("Error fetching notes", err)
	}
	return &dto.NoteListResponse{Notes: notes}, nil
}

// Update 部分更新。他人或不存在的笔记一律返回 404。
func (s *Service) Update(ctx context.Context, ownerID, noteID uint, req dto.UpdateNoteRequest) (*model.Note, error) {
	note, err := s.find(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		tags, err := normalizeTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		note.Tags = tags
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}

	if err := s.noteStore.Save(ctx, note); err != nil {
		return nil, platformservice.WrapInternal("Error updating note", err)
	}
	return note, nil
}

// Delete 删除当前用户的笔记。
func (s *Service) Delete(ctx context.Context, ownerID, noteID uint) error {
	deleted, err := s.noteStore.DeleteByIDAndOwner(ctx, noteID, ownerID)
	if err != nil {
		return platformservice.WrapInternal("Error deleting note", err)
	}
	if !deleted {
		return errNoteNotFound
	}
	return nil
}

// CountAll 供后台概览使用。
func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.noteStore.CountAll(ctx)
}

func (s *Service) find(ctx context.Context, ownerID, noteID uint) (*model.Note, error) {
	note, err := s.noteStore.FindByIDAndOwner(ctx, noteID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoteNotFound
		}
		return nil, platformservice.WrapInternal("Error fetching note", err)
	}
	return note, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", platformservice.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(title) > consts.MaxNoteTitleRunes {
		return "", platformservice.NewValidationError("Title cannot exceed 100 characters")
	}
	return title, nil
}

// normalizeTags 去除空白与重复标签，保持原有顺序。
func normalizeTags(raw []string) ([]string, error) {
	tags := lo.Uniq(lo.FilterMap(raw, func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	}))
	if len(tags) > consts.MaxTagCount {
		return nil, platformservice.NewValidationError("Too many tags")
	}
	return tags, nil
}
