package handler

import (
	"net/http"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/modules/feedback/dto"
	feedbackservice "leximind-server/internal/modules/feedback/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	feedbackService *feedbackservice.Service
}

func New(feedbackService *feedbackservice.Service) *Handler {
	return &Handler{feedbackService: feedbackService}
}

// SubmitFeedback POST /api/feedback
func (h *Handler) SubmitFeedback(c *gin.Context) {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Content is required")
		return
	}

	item, err := h.feedbackService.Submit(c.Request.Context(), user, req.Content)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error submitting feedback")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListFeedback GET /api/feedback（管理员）
func (h *Handler) ListFeedback(c *gin.Context) {
	items, err := h.feedbackService.ListAndMarkSeen(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching feedback")
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteFeedback DELETE /api/feedback/:id
func (h *Handler) DeleteFeedback(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Feedback not found")
		return
	}
	if err := h.feedbackService.Delete(c.Request.Context(), id); err != nil {
		httpx.WriteServiceError(c, err, "Error deleting feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}

// ToggleBookmark PUT /api/feedback/:id/bookmark
func (h *Handler) ToggleBookmark(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Feedback not found")
		return
	}
	item, err := h.feedbackService.ToggleBookmark(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error updating feedback")
		return
	}
	c.JSON(http.StatusOK, item)
}

// NewCount GET /api/feedback/new-count
func (h *Handler) NewCount(c *gin.Context) {
	count, err := h.feedbackService.CountNew(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Error counting feedback")
		return
	}
	c.JSON(http.StatusOK, dto.NewCountResponse{Count: count})
}
