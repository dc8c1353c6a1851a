package handlers

import (
	"review-backend/internal/models"
	"review-backend/internal/services"
)

type TitleRequest struct {
	Name        string   `json:"name" validate:"required,max=200" example:"Dune"`
	Year        int      `json:"year" validate:"required" example:"1965"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"omitempty,max=50,slug" example:"books"`
	Genre       []string `json:"genre" validate:"dive,max=50,slug" example:"scifi"`
	CoverURL    string   `json:"cover_url" validate:"omitempty,url"`
}

func (r *TitleRequest) toInput() services.TitleInput {
	return services.TitleInput{
		Name:         r.Name,
		Year:         r.Year,
		Description:  r.Description,
		CategorySlug: r.Category,
		GenreSlugs:   r.Genre,
		CoverURL:     r.CoverURL,
	}
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=200"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" validate:"omitempty,max=50,slug"`
	Genre       *[]string `json:"genre" validate:"omitempty,dive,max=50,slug"`
	CoverURL    *string   `json:"cover_url" validate:"omitempty,url"`
}

func (r *UpdateTitleRequest) toPatch() services.TitlePatch {
	return services.TitlePatch{
		Name:         r.Name,
		Year:         r.Year,
		Description:  r.Description,
		CategorySlug: r.Category,
		GenreSlugs:   r.Genre,
		CoverURL:     r.CoverURL,
	}
}

type TitleResponse struct {
	ID          uint              `json:"id" example:"1"`
	Name        string            `json:"name" example:"Dune"`
	Year        int               `json:"year" example:"1965"`
	Rating      *float64          `json:"rating,omitempty" example:"8.5"`
	Description string            `json:"description"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
	CoverURL    string            `json:"cover_url,omitempty"`
}

func NewTitleResponse(t *models.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       NewGenreResponseList(t.Genres),
		CoverURL:    t.CoverURL,
	}
	if t.Category != nil {
		category := NewCategoryResponse(t.Category)
		resp.Category = &category
	}
	return resp
}

func NewTitleResponseList(titles []models.Title, ratings map[uint]float64) []TitleResponse {
	out := make([]TitleResponse, len(titles))
	for i := range titles {
		var rating *float64
		if r, ok := ratings[titles[i].ID]; ok {
			rating = &r
		}
		out[i] = NewTitleResponse(&titles[i], rating)
	}
	return out
}
