package models

import (
	"time"
)

type Title struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	Name        string    `gorm:"not null;index;size:200" json:"name" example:"Dune"`
	Year        int       `gorm:"not null;index" json:"year" example:"1965"`
	Description string    `gorm:"type:text" json:"description"`
	CoverURL    string    `json:"cover_url,omitempty"`
	CategoryID  *uint     `gorm:"index" json:"-"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Genres      []Genre   `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE" json:"genre,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Title) TableName() string {
	return "titles"
}
