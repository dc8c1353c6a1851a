package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 10
)

// Review is a user's scored write-up of a title. A user may review a
// given title at most once, enforced by the composite unique index.
type Review struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_author_title" json:"-"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	TitleID  uint      `gorm:"not null;uniqueIndex:idx_reviews_author_title" json:"-"`
	Title    *Title    `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE" json:"-"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	Score    int       `gorm:"not null" json:"score" example:"8"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
}

func (Review) TableName() string {
	return "reviews"
}
