package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leximind-server/internal/consts"
	"leximind-server/internal/model"
	"leximind-server/internal/modules/note/dto"
	"leximind-server/internal/modules/note/repo"
	noteservice "leximind-server/internal/modules/note/service"
	platformservice "leximind-server/internal/platform/service"
	"leximind-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

// setupRouter 用请求头 X-Test-User 模拟网关写入的当前用户。
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := noteservice.New(platformservice.NewAppService(nil, time.UTC), repo.NewNoteRepository(testutils.SetupDB(t)))
	h := New(svc)

	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		var id uint
		if _, err := fmt.Sscan(c.GetHeader("X-Test-User"), &id); err == nil {
			c.Set(consts.ContextUserKey, &model.User{ID: id})
		}
		c.Next()
	})
	api.POST("/notes", h.CreateNote)
	api.GET("/notes", h.ListNotes)
	api.PUT("/notes/:id", h.UpdateNote)
	api.DELETE("/notes/:id", h.DeleteNote)
	return r
}

func doRequest(r *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：创建、列表、更新、删除的完整流程。
func TestNoteCRUD(t *testing.T) {
	r := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/api/notes", "1", map[string]any{"title": "hello", "tags": []string{"x"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d: %s", w.Code, w.Body.String())
	}
	var created model.Note
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/api/notes/%d", created.ID), "1", map[string]any{"content": "world"})
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/notes", "1", nil)
	var list dto.NoteListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Notes) != 1 || list.Notes[0].Content != "world" || list.Notes[0].Title != "hello" {
		t.Fatalf("列表不符合预期: %+v", list.Notes)
	}

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/notes/%d", created.ID), "1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
}

// 测试内容：删除他人的笔记返回 404。
func TestDeleteForeignNote(t *testing.T) {
	r := setupRouter(t)
	w := doRequest(r, http.MethodPost, "/api/notes", "1", map[string]any{"title": "mine"})
	var created model.Note
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/notes/%d", created.ID), "2", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Note not found" {
		t.Fatalf("期望 Note not found，实际为 %v", body)
	}

	w = doRequest(r, http.MethodDelete, "/api/notes/abc", "1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际为 %d", w.Code)
	}
}

// 测试内容：缺少标题返回 400，缺少身份返回 401。
func TestCreateNote_Errors(t *testing.T) {
	r := setupRouter(t)
	if w := doRequest(r, http.MethodPost, "/api/notes", "1", map[string]any{"content": "x"}); w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d", w.Code)
	}
	if w := doRequest(r, http.MethodPost, "/api/notes", "", map[string]any{"title": "x"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
}
