package repositories

import "warbler/internal/models"

// MessageRepository defines the interface for message data access.
type MessageRepository interface {
	Create(message *models.Message) error
	GetByID(id string) (*models.Message, error)
	GetByUser(userID string) ([]models.Message, error)
	CountByUser(userID string) (int64, error)
	// Timeline returns the newest messages authored by any of the given
	// users, newest first, bounded by limit.
	Timeline(userIDs []string, limit int) ([]models.Message, error)
	Delete(id string) error
}
