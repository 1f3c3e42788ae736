package services

import (
	"errors"
	"fmt"
	"log"

	"warbler/internal/models"
	"warbler/internal/repositories"
	"warbler/internal/security"
	"warbler/pkg/events"
)

// UserService handles business logic for accounts: signup, authentication,
// profiles and account deletion.
type UserService struct {
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
	followRepo  repositories.FollowRepository
	likeRepo    repositories.LikeRepository
	publisher   *events.Publisher
}

// NewUserService creates a new UserService. publisher may be nil, in which
// case no events are emitted.
func NewUserService(
	userRepo repositories.UserRepository,
	messageRepo repositories.MessageRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	publisher *events.Publisher,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		publisher:   publisher,
	}
}

// Profile is a user together with the counts shown on their profile page.
type Profile struct {
	User           models.User `json:"user"`
	MessageCount   int64       `json:"message_count"`
	FollowingCount int64       `json:"following_count"`
	FollowerCount  int64       `json:"follower_count"`
	LikeCount      int64       `json:"like_count"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are left
// unchanged.
type ProfileUpdate struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

// Signup creates a new account with a freshly hashed password. An empty
// password fails with ErrValidation before any persistence attempt; a
// username or email collision fails with ErrDuplicate at commit time.
func (s *UserService) Signup(username, email, password string) (*models.User, error) {
	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		Password:       hashed,
		ImageURL:       models.DefaultImageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
		}
		if err := s.publisher.Publish(events.UserSignedUp, payload); err != nil {
			log.Printf("Warning: failed to publish %s event for user %s: %v", events.UserSignedUp, user.ID, err)
		}
	}

	return user, nil
}

// Authenticate looks a user up by username and verifies their password.
// Unknown usernames and wrong passwords both come back as ErrUnauthorized;
// bad credentials are a normal outcome and never panic.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
		}
		return nil, err
	}
	if !security.CheckPassword(password, user.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
	}
	return user, nil
}

// GetByID retrieves a single user.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// List returns every user, or only those whose username contains q when q is
// non-empty. Matching is case-insensitive.
func (s *UserService) List(q string) ([]models.User, error) {
	if q == "" {
		return s.userRepo.GetAll()
	}
	return s.userRepo.Search(q)
}

// GetProfile loads a user together with their profile counts.
func (s *UserService) GetProfile(id string) (*Profile, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	messageCount, err := s.messageRepo.CountByUser(id)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(id)
	if err != nil {
		return nil, err
	}
	followerCount, err := s.followRepo.CountFollowers(id)
	if err != nil {
		return nil, err
	}
	likeCount, err := s.likeRepo.CountByUser(id)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:           *user,
		MessageCount:   messageCount,
		FollowingCount: followingCount,
		FollowerCount:  followerCount,
		LikeCount:      likeCount,
	}, nil
}

// UpdateProfile edits a user's profile. The user's current password must be
// supplied; a wrong password fails with ErrUnauthorized and nothing changes.
func (s *UserService) UpdateProfile(id string, update ProfileUpdate, password string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !security.CheckPassword(password, user.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", models.ErrUnauthorized)
	}

	if update.Username != "" {
		user.Username = update.Username
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.ImageURL != "" {
		user.ImageURL = update.ImageURL
	}
	if update.HeaderImageURL != "" {
		user.HeaderImageURL = update.HeaderImageURL
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}
	if update.Location != "" {
		user.Location = update.Location
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account together with its messages and graph edges.
func (s *UserService) Delete(id string) error {
	return s.userRepo.Delete(id)
}

// IsFollowing reports whether user a follows user b.
func (s *UserService) IsFollowing(a, b string) (bool, error) {
	return s.followRepo.Exists(a, b)
}

// IsFollowedBy reports whether user a is followed by user b.
func (s *UserService) IsFollowedBy(a, b string) (bool, error) {
	return s.followRepo.Exists(b, a)
}
