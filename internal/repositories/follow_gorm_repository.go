package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"warbler/internal/models"
)

// GORMFollowRepository is a GORM implementation of FollowRepository.
type GORMFollowRepository struct {
	db *gorm.DB
}

// NewGORMFollowRepository creates a new instance of GORMFollowRepository.
func NewGORMFollowRepository(db *gorm.DB) *GORMFollowRepository {
	return &GORMFollowRepository{
		db: db,
	}
}

// Create inserts a follow edge. Duplicate edges are rejected by the composite
// primary key, which also serializes concurrent duplicate attempts.
func (r *GORMFollowRepository) Create(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: follow edge %s -> %s", models.ErrDuplicate, follow.FollowerID, follow.FollowedID)
		}
		return fmt.Errorf("failed to create follow edge: %w", err)
	}
	return nil
}

// Delete removes a follow edge if present. Removing an absent edge is a no-op.
func (r *GORMFollowRepository) Delete(followerID, followedID string) error {
	err := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return nil
}

// Exists reports whether followerID follows followedID.
func (r *GORMFollowRepository) Exists(followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return count > 0, nil
}

// Followers retrieves the users following userID.
func (r *GORMFollowRepository) Followers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get followers of user %s: %w", userID, err)
	}
	return users, nil
}

// Following retrieves the users that userID follows.
func (r *GORMFollowRepository) Following(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users followed by %s: %w", userID, err)
	}
	return users, nil
}

// CountFollowers returns how many users follow userID.
func (r *GORMFollowRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count followers of user %s: %w", userID, err)
	}
	return count, nil
}

// CountFollowing returns how many users userID follows.
func (r *GORMFollowRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users followed by %s: %w", userID, err)
	}
	return count, nil
}
