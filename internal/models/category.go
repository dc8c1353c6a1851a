package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"not null;index;size:256" json:"name" example:"Books"`
	Slug      string    `gorm:"uniqueIndex;not null;size:50" json:"slug" example:"books"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
