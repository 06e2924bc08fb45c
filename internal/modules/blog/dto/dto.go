package dto

import "leximind-server/internal/model"

type CreatePostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

type UpdatePostRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
}

type ListQuery struct {
	Category string `form:"category"`
}

// PostResponse 文章及作者信息。
type PostResponse struct {
	model.BlogPost
	PostedBy Author `json:"postedBy"`
}

type Author struct {
	ID       uint   `json:"_id"`
	Username string `json:"username"`
	Image    string `json:"image,omitempty"`
}

func NewPostResponse(post model.BlogPost) PostResponse {
	return PostResponse{
		BlogPost: post,
		PostedBy: Author{ID: post.PostedBy.ID, Username: post.PostedBy.Username, Image: post.PostedBy.Image},
	}
}
