package services

import (
	"errors"
	"log"

	"warbler/internal/models"
	"warbler/internal/repositories"
	"warbler/pkg/events"
)

// SocialService handles the social graph and likes: follow/unfollow edges and
// like/unlike edges between users and messages.
type SocialService struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
	followRepo  repositories.FollowRepository
	likeRepo    repositories.LikeRepository
	publisher   *events.Publisher
}

// NewSocialService creates a new SocialService. publisher may be nil, in
// which case no events are emitted.
func NewSocialService(
	userRepo repositories.UserRepository,
	messageRepo repositories.MessageRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	publisher *events.Publisher,
) *SocialService {
	return &SocialService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		publisher:   publisher,
	}
}

// Follow inserts a follow edge from followerID to targetID. The operation is
// idempotent in intent: following someone you already follow reports
// created=false without an error. Concurrent duplicate attempts are resolved
// by the database's uniqueness constraint, not by application locking.
func (s *SocialService) Follow(followerID, targetID string) (created bool, err error) {
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return false, err
	}

	edge := &models.Follow{FollowerID: followerID, FollowedID: targetID}
	if err := s.followRepo.Create(edge); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"follower_id": followerID,
			"followed_id": targetID,
		}
		if err := s.publisher.Publish(events.UserFollowed, payload); err != nil {
			log.Printf("Warning: failed to publish %s event: %v", events.UserFollowed, err)
		}
	}

	return true, nil
}

// Unfollow removes the follow edge if present; unfollowing someone you do not
// follow is a no-op, not an error.
func (s *SocialService) Unfollow(followerID, targetID string) error {
	return s.followRepo.Delete(followerID, targetID)
}

// Like inserts a like edge from userID to messageID. Liking a message twice
// reports created=false without an error; the duplicate is detected by the
// unique index, never treated as a server failure.
func (s *SocialService) Like(userID, messageID string) (created bool, err error) {
	if _, err := s.messageRepo.GetByID(messageID); err != nil {
		return false, err
	}

	edge := &models.Like{UserID: userID, MessageID: messageID}
	if err := s.likeRepo.Create(edge); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unlike removes the like edge if present; a missing edge is a no-op.
func (s *SocialService) Unlike(userID, messageID string) error {
	return s.likeRepo.Delete(userID, messageID)
}

// ToggleLike likes the message when no edge exists and unlikes it otherwise,
// reporting whether the user likes the message afterwards. A concurrent
// duplicate like resolves through the unique constraint inside Like.
func (s *SocialService) ToggleLike(userID, messageID string) (liked bool, err error) {
	exists, err := s.likeRepo.Exists(userID, messageID)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.likeRepo.Delete(userID, messageID); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := s.Like(userID, messageID); err != nil {
		return false, err
	}
	return true, nil
}

// Followers returns the users following userID.
func (s *SocialService) Followers(userID string) ([]models.User, error) {
	return s.followRepo.Followers(userID)
}

// Following returns the users userID follows.
func (s *SocialService) Following(userID string) ([]models.User, error) {
	return s.followRepo.Following(userID)
}

// LikedMessages returns the messages userID has liked.
func (s *SocialService) LikedMessages(userID string) ([]models.Message, error) {
	return s.likeRepo.MessagesLikedBy(userID)
}

// LikeCount returns how many users have liked a message.
func (s *SocialService) LikeCount(messageID string) (int64, error) {
	return s.likeRepo.CountByMessage(messageID)
}
