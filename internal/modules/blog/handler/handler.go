package handler

import (
	"net/http"

	"leximind-server/internal/common/httpx"
	"leximind-server/internal/modules/blog/dto"
	blogservice "leximind-server/internal/modules/blog/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	blogService *blogservice.Service
}

func New(blogService *blogservice.Service) *Handler {
	return &Handler{blogService: blogService}
}

// CreatePost POST /api/blog-posts（管理员）
func (h *Handler) CreatePost(c *gin.Context) {
	user, ok := httpx.CurrentUser(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.blogService.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error creating blog post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// AdminListPosts GET /api/blog-posts/admin
func (h *Handler) AdminListPosts(c *gin.Context) {
	posts, err := h.blogService.ListAll(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching blog posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// AdminGetPost GET /api/blog-posts/admin/:id
func (h *Handler) AdminGetPost(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Blog post not found")
		return
	}
	post, err := h.blogService.GetForAdmin(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching blog post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// UpdatePost PUT /api/blog-posts/:id
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Blog post not found")
		return
	}
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.blogService.Update(c.Request.Context(), id, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error updating blog post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost DELETE /api/blog-posts/:id
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Blog post not found")
		return
	}
	if err := h.blogService.Delete(c.Request.Context(), id); err != nil {
		httpx.WriteServiceError(c, err, "Error deleting blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted successfully"})
}

// ListPublishedPosts GET /api/blog-posts
func (h *Handler) ListPublishedPosts(c *gin.Context) {
	var q dto.ListQuery
	_ = c.ShouldBindQuery(&q)

	posts, err := h.blogService.ListPublished(c.Request.Context(), q)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching blog posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPublishedPost GET /api/blog-posts/:id
func (h *Handler) GetPublishedPost(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id")
	if !ok {
		httpx.WriteError(c, http.StatusNotFound, "Blog post not found")
		return
	}
	post, err := h.blogService.GetPublished(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "Error fetching blog post")
		return
	}
	c.JSON(http.StatusOK, post)
}
