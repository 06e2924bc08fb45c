package handler

import (
	"net/http"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/modules/note/dto"
	noteservice "leximind-server/internal/modules/note/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	noteService *noteservice.Service
}

func New(noteService *noteservice.Service) *Handler {
	return &Handler{noteService: noteService}
}

// CreateNote POST /api/notes
func (h *Handler) CreateNote(c *gin.Context) {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error creating note")
		return
	}
	c.JSON(http.StatusCreated, note)
}

// ListNotes GET /api/notes
func (h *Handler) ListNotes(c *gin.Context) {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	resp, err := h.noteService.List(c.Request.Context(), user.ID)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching notes")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateNote PUT /api/notes/:id
func (h *Handler) UpdateNote(c *gin.Context) {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Note not found")
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), user.ID, id, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error updating note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote DELETE /api/notes/:id
func (h *Handler) DeleteNote(c *gin.Context) {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Note not found")
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), user.ID, id); err != nil {
		httpx.WriteServiceError(c, err, "Error deleting note")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}
