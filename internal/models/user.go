package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Username    string    `gorm:"uniqueIndex;not null;size:150" json:"username" example:"capote"`
	Email       string    `gorm:"uniqueIndex;not null;size:254" json:"email" example:"capote@example.com"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Role        string    `gorm:"not null;default:user;size:20;index" json:"role" example:"user"`
	CodeVersion int       `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}
