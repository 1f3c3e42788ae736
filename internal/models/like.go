package models

import "time"

// Like marks that a user favorited a message.
// The combination of UserID and MessageID must be unique.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_message"`
	MessageID string    `json:"message_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_message"`
	CreatedAt time.Time `json:"created_at"`
}
