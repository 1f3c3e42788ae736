package models

import "time"

// MaxMessageLength bounds the text of a single warble.
const MaxMessageLength = 140

// Message is a short post ("warble") owned by exactly one user.
type Message struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Text      string    `json:"text" gorm:"type:varchar(140);not null" validate:"required,max=140"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}
