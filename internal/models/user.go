package models

import "gorm.io/gorm"

// Profile images used when signup does not provide any.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents an account on Warbler.
type User struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username       string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Email          string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password       string `gorm:"type:varchar(255)"` // bcrypt hash, no json tag for security
	ImageURL       string `json:"image_url" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	HeaderImageURL string `json:"header_image_url" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	Bio            string `json:"bio" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Location       string `json:"location" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
