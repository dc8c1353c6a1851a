package handlers

import (
	"time"

	"review-backend/internal/models"
)

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author" example:"capote"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

func NewCommentResponse(cm *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      cm.ID,
		Text:    cm.Text,
		PubDate: cm.PubDate,
	}
	if cm.Author != nil {
		resp.Author = cm.Author.Username
	}
	return resp
}

func NewCommentResponseList(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = NewCommentResponse(&comments[i])
	}
	return out
}
