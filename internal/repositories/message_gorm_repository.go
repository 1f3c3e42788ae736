package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warbler/internal/models"
)

// GORMMessageRepository is a GORM implementation of MessageRepository.
type GORMMessageRepository struct {
	db *gorm.DB
}

// NewGORMMessageRepository creates a new instance of GORMMessageRepository.
func NewGORMMessageRepository(db *gorm.DB) *GORMMessageRepository {
	return &GORMMessageRepository{
		db: db,
	}
}

// Create inserts a new message.
func (r *GORMMessageRepository) Create(message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// GetByID retrieves a single message by its ID.
func (r *GORMMessageRepository) GetByID(id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get message by ID %s: %w", id, err)
	}
	return &message, nil
}

// GetByUser retrieves all messages owned by a user, newest first.
func (r *GORMMessageRepository) GetByUser(userID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to get messages for user %s: %w", userID, err)
	}
	return messages, nil
}

// CountByUser returns how many messages a user owns.
func (r *GORMMessageRepository) CountByUser(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Message{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count messages for user %s: %w", userID, err)
	}
	return count, nil
}

// Timeline retrieves the newest messages authored by any of the given users.
func (r *GORMMessageRepository) Timeline(userIDs []string, limit int) ([]models.Message, error) {
	var messages []models.Message
	if len(userIDs) == 0 {
		return messages, nil
	}
	err := r.db.Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return messages, nil
}

// Delete removes a message and any likes pointing at it in one transaction.
func (r *GORMMessageRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Message{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: message %s", models.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	return nil
}
