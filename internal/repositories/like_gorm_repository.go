package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warbler/internal/models"
)

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{
		db: db,
	}
}

// Create inserts a like edge. A user may like a given message at most once;
// duplicates are rejected by the unique index on (user_id, message_id).
func (r *GORMLikeRepository) Create(like *models.Like) error {
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	if err := r.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: like by user %s on message %s", models.ErrDuplicate, like.UserID, like.MessageID)
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// Delete removes a like edge if present. Removing an absent edge is a no-op.
func (r *GORMLikeRepository) Delete(userID, messageID string) error {
	err := r.db.Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

// Exists reports whether userID has liked messageID.
func (r *GORMLikeRepository) Exists(userID, messageID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

// MessagesLikedBy retrieves the messages a user has liked, newest like first.
func (r *GORMLikeRepository) MessagesLikedBy(userID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Model(&models.Message{}).
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get messages liked by user %s: %w", userID, err)
	}
	return messages, nil
}

// CountByMessage returns how many users have liked a message.
func (r *GORMLikeRepository) CountByMessage(messageID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("message_id = ?", messageID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for message %s: %w", messageID, err)
	}
	return count, nil
}

// CountByUser returns how many messages a user has liked.
func (r *GORMLikeRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes by user %s: %w", userID, err)
	}
	return count, nil
}
