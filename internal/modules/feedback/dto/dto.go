package dto

type CreateFeedbackRequest struct {
	Content string `json:"content"`
}

type NewCountResponse struct {
	Count int64 `json:"count"`
}
