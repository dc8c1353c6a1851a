package handlers

import "review-backend/internal/models"

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=256" example:"Books"`
	Slug string `json:"slug" validate:"required,max=50,slug" example:"books"`
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,max=256" example:"Science Fiction"`
	Slug string `json:"slug" validate:"required,max=50,slug" example:"scifi"`
}

type CategoryResponse struct {
	Name string `json:"name" example:"Books"`
	Slug string `json:"slug" example:"books"`
}

type GenreResponse struct {
	Name string `json:"name" example:"Science Fiction"`
	Slug string `json:"slug" example:"scifi"`
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}

func NewCategoryResponseList(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = NewCategoryResponse(&categories[i])
	}
	return out
}

func NewGenreResponse(g *models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}

func NewGenreResponseList(genres []models.Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i := range genres {
		out[i] = NewGenreResponse(&genres[i])
	}
	return out
}
