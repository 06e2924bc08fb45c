package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"leximind-server/internal/modules/note/dto"
	"leximind-server/internal/modules/note/repo"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(platformservice.NewAppService(nil, time.UTC), repo.NewNoteRepository(testutils.SetupDB(t)))
}

// 测试内容：创建时校验标题并规范化标签。
func TestCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, dto.CreateNoteRequest{Title: "   "})
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeValidation))

	_, err = svc.Create(ctx, 1, dto.CreateNoteRequest{Title: strings.Repeat("字", 101)})
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeValidation))

	note, err := svc.Create(ctx, 1, dto.CreateNoteRequest{
		Title: strings.Repeat("字", 100),
		Tags:  []string{" go ", "", "go", "db"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "db"}, note.Tags)
	assert.Equal(t, uint(1), note.UserID)
}

// 测试内容：部分更新只修改提供的字段。
func TestUpdate_Partial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	note, err := svc.Create(ctx, 1, dto.CreateNoteRequest{Title: "t", Content: "body", Tags: []string{"a"}})
	require.NoError(t, err)

	pinned := true
	updated, err := svc.Update(ctx, 1, note.ID, dto.UpdateNoteRequest{IsPinned: &pinned})
	require.NoError(t, err)
	assert.True(t, updated.IsPinned)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, []string{"a"}, updated.Tags)

	empty := ""
	_, err = svc.Update(ctx, 1, note.ID, dto.UpdateNoteRequest{Title: &empty})
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeValidation))
}

// 测试内容：访问他人笔记返回 404 而不是 403。
func TestForeignNoteIsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	note, err := svc.Create(ctx, 1, dto.CreateNoteRequest{Title: "private"})
	require.NoError(t, err)

	title := "hijack"
	_, err = svc.Update(ctx, 2, note.ID, dto.UpdateNoteRequest{Title: &title})
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeNotFound))

	err = svc.Delete(ctx, 2, note.ID)
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeNotFound))
	assert.EqualError(t, err, "Note not found")

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list.Notes, 1)

	require.NoError(t, svc.Delete(ctx, 1, note.ID))
	err = svc.Delete(ctx, 1, note.ID)
	assert.True(t, platformservice.IsCode(err, platformservice.ErrorCodeNotFound))
}
