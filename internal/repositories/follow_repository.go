package repositories

import "warbler/internal/models"

// FollowRepository defines the interface for follow edge data access.
type FollowRepository interface {
	Create(follow *models.Follow) error
	// Delete removes the edge if present; deleting an absent edge is a no-op.
	Delete(followerID, followedID string) error
	Exists(followerID, followedID string) (bool, error)
	Followers(userID string) ([]models.User, error)
	Following(userID string) ([]models.User, error)
	CountFollowers(userID string) (int64, error)
	CountFollowing(userID string) (int64, error)
}
