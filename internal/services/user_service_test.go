package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"warbler/internal/models"
	"warbler/internal/services"
)

func newUserService() (*services.UserService, *MockUserRepository, *MockMessageRepository, *MockFollowRepository, *MockLikeRepository) {
	userRepo := new(MockUserRepository)
	messageRepo := new(MockMessageRepository)
	followRepo := new(MockFollowRepository)
	likeRepo := new(MockLikeRepository)
	svc := services.NewUserService(userRepo, messageRepo, followRepo, likeRepo, nil)
	return svc, userRepo, messageRepo, followRepo, likeRepo
}

func TestUserService_Signup(t *testing.T) {
	svc, userRepo, _, _, _ := newUserService()

	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := svc.Signup("lovehermoonfreckle", "stars4lyfe@ohmystars.com", "darcydarcy")
	assert.NoError(t, err)
	assert.Equal(t, "lovehermoonfreckle", user.Username)
	assert.Equal(t, "stars4lyfe@ohmystars.com", user.Email)

	// The stored password must be a hash, never the plaintext.
	assert.NotEqual(t, "darcydarcy", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("darcydarcy")))

	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.Equal(t, models.DefaultHeaderImageURL, user.HeaderImageURL)
	userRepo.AssertExpectations(t)
}

func TestUserService_SignupEmptyPassword(t *testing.T) {
	svc, userRepo, _, _, _ := newUserService()

	user, err := svc.Signup("lovehermoonfreckle", "stars4lyfe@ohmystars.com", "")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrValidation)

	// Validation failed before any persistence attempt.
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_SignupDuplicate(t *testing.T) {
	svc, userRepo, _, _, _ := newUserService()

	dupErr := fmt.Errorf("%w: username or email already taken", models.ErrDuplicate)
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Return(dupErr).Once()

	user, err := svc.Signup("lovemystargirl", "numbers4lyfe@ohmystars.com", "elleelle")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrDuplicate)
	userRepo.AssertExpectations(t)
}

func TestUserService_Authenticate(t *testing.T) {
	svc, userRepo, _, _, _ := newUserService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("elleelle"), bcrypt.DefaultCost)
	darcy := &models.User{
		ID:       "user-darcy",
		Username: "lovemystargirl",
		Email:    "numbers4lyfe@ohmystars.com",
		Password: string(hashed),
	}

	// Correct username and password.
	userRepo.On("GetByUsername", "lovemystargirl").Return(darcy, nil).Once()
	user, err := svc.Authenticate("lovemystargirl", "elleelle")
	assert.NoError(t, err)
	assert.Equal(t, darcy.ID, user.ID)

	// Wrong password.
	userRepo.On("GetByUsername", "lovemystargirl").Return(darcy, nil).Once()
	user, err = svc.Authenticate("lovemystargirl", "elleelleelle")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// Unknown username comes back as the same generic failure, never a panic.
	notFound := fmt.Errorf("%w: user lovemystargirl!", models.ErrNotFound)
	userRepo.On("GetByUsername", "lovemystargirl!").Return(nil, notFound).Once()
	user, err = svc.Authenticate("lovemystargirl!", "elleelle")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	userRepo.AssertExpectations(t)
}

func TestUserService_IsFollowing(t *testing.T) {
	svc, _, _, followRepo, _ := newUserService()

	followRepo.On("Exists", "user-a", "user-b").Return(true, nil)
	followRepo.On("Exists", "user-b", "user-a").Return(false, nil)

	following, err := svc.IsFollowing("user-a", "user-b")
	assert.NoError(t, err)
	assert.True(t, following)

	// The edge is directed: the inverse does not hold.
	following, err = svc.IsFollowing("user-b", "user-a")
	assert.NoError(t, err)
	assert.False(t, following)

	// IsFollowedBy is the mirror of IsFollowing.
	followedBy, err := svc.IsFollowedBy("user-b", "user-a")
	assert.NoError(t, err)
	assert.True(t, followedBy)

	followedBy, err = svc.IsFollowedBy("user-a", "user-b")
	assert.NoError(t, err)
	assert.False(t, followedBy)
}

func TestUserService_GetProfile(t *testing.T) {
	svc, userRepo, messageRepo, followRepo, likeRepo := newUserService()

	darcy := &models.User{ID: "user-darcy", Username: "darcy", Email: "darcy@email.com"}
	userRepo.On("GetByID", "user-darcy").Return(darcy, nil).Once()
	messageRepo.On("CountByUser", "user-darcy").Return(int64(1), nil).Once()
	followRepo.On("CountFollowing", "user-darcy").Return(int64(0), nil).Once()
	followRepo.On("CountFollowers", "user-darcy").Return(int64(1), nil).Once()
	likeRepo.On("CountByUser", "user-darcy").Return(int64(1), nil).Once()

	profile, err := svc.GetProfile("user-darcy")
	assert.NoError(t, err)
	assert.Equal(t, "darcy", profile.User.Username)
	assert.Equal(t, int64(1), profile.MessageCount)
	assert.Equal(t, int64(0), profile.FollowingCount)
	assert.Equal(t, int64(1), profile.FollowerCount)
	assert.Equal(t, int64(1), profile.LikeCount)

	userRepo.AssertExpectations(t)
	messageRepo.AssertExpectations(t)
	followRepo.AssertExpectations(t)
	likeRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfileWrongPassword(t *testing.T) {
	svc, userRepo, _, _, _ := newUserService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	darcy := &models.User{ID: "user-darcy", Username: "darcy", Password: string(hashed)}
	userRepo.On("GetByID", "user-darcy").Return(darcy, nil).Once()

	updated, err := svc.UpdateProfile("user-darcy", services.ProfileUpdate{Bio: "new bio"}, "wrongpassword")
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, userRepo, _, _, _ := newUserService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	darcy := &models.User{ID: "user-darcy", Username: "darcy", Email: "darcy@email.com", Password: string(hashed)}
	userRepo.On("GetByID", "user-darcy").Return(darcy, nil).Once()
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := svc.UpdateProfile("user-darcy", services.ProfileUpdate{Bio: "warbling away", Location: "Pemberley"}, "password")
	assert.NoError(t, err)
	assert.Equal(t, "warbling away", updated.Bio)
	assert.Equal(t, "Pemberley", updated.Location)
	// Untouched fields keep their values.
	assert.Equal(t, "darcy", updated.Username)
	assert.Equal(t, "darcy@email.com", updated.Email)
	userRepo.AssertExpectations(t)
}
