package dto

import "leximind-server/internal/model"

type CreateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"isPinned"`
}

// UpdateNoteRequest 部分更新，nil 字段保持不变。
type UpdateNoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

type NoteListResponse struct {
	Notes []model.Note `json:"notes"`
}
