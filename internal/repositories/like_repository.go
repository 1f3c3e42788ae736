package repositories

import "warbler/internal/models"

// LikeRepository defines the interface for like edge data access.
type LikeRepository interface {
	Create(like *models.Like) error
	// Delete removes the edge if present; deleting an absent edge is a no-op.
	Delete(userID, messageID string) error
	Exists(userID, messageID string) (bool, error)
	MessagesLikedBy(userID string) ([]models.Message, error)
	CountByMessage(messageID string) (int64, error)
	CountByUser(userID string) (int64, error)
}
