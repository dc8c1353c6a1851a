package handlers

import (
	"time"

	"review-backend/internal/models"
	"review-backend/internal/services"
)

type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10" example:"8"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" validate:"omitempty,gte=1,lte=10"`
}

func (r *UpdateReviewRequest) toPatch() services.ReviewPatch {
	return services.ReviewPatch{
		Text:  r.Text,
		Score: r.Score,
	}
}

type ReviewResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author" example:"capote"`
	Text    string    `json:"text"`
	Score   int       `json:"score" example:"8"`
	PubDate time.Time `json:"pub_date"`
}

func NewReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}

func NewReviewResponseList(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = NewReviewResponse(&reviews[i])
	}
	return out
}
