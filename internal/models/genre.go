package models

import "time"

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"not null;index;size:256" json:"name" example:"Science Fiction"`
	Slug      string    `gorm:"uniqueIndex;not null;size:50" json:"slug" example:"scifi"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Genre) TableName() string {
	return "genres"
}

type TitleGenre struct {
	TitleID uint `gorm:"primaryKey" json:"title_id"`
	GenreID uint `gorm:"primaryKey" json:"genre_id"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
