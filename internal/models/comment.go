package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewID uint      `gorm:"not null;index" json:"-"`
	Review   *Review   `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE" json:"-"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
}

func (Comment) TableName() string {
	return "comments"
}
