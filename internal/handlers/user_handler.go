package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/services"
)

// UserHandler handles HTTP requests for user listing, profiles and the
// social graph.
type UserHandler struct {
	userService    *services.UserService
	messageService *services.MessageService
	socialService  *services.SocialService
	store          *session.Store
	validate       *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userService *services.UserService,
	messageService *services.MessageService,
	socialService *services.SocialService,
	store *session.Store,
) *UserHandler {
	return &UserHandler{
		userService:    userService,
		messageService: messageService,
		socialService:  socialService,
		store:          store,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. requireAuth
// gates every mutating route.
func (h *UserHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleList)
	userRoutes.Post("/follow/:id", requireAuth, h.HandleFollow)
	userRoutes.Post("/stop-following/:id", requireAuth, h.HandleStopFollowing)
	userRoutes.Post("/profile", requireAuth, h.HandleUpdateProfile)
	userRoutes.Post("/delete", requireAuth, h.HandleDeleteAccount)
	userRoutes.Get("/:id", h.HandleShow)
	userRoutes.Get("/:id/following", h.HandleFollowing)
	userRoutes.Get("/:id/followers", h.HandleFollowers)
	userRoutes.Get("/:id/likes", h.HandleLikes)
}

// HandleList lists all users, optionally filtered by the q query parameter
// (case-insensitive username substring).
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Query("q"))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleShow renders a user profile with its message/following/follower/like
// counts.
func (h *UserHandler) HandleShow(c *fiber.Ctx) error {
	userID := c.Params("id")
	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %s not found", userID),
			})
		}
		log.Printf("Error loading profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
			"error":   err.Error(),
		})
	}

	messages, err := h.messageService.ByUser(userID)
	if err != nil {
		log.Printf("Error loading messages for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user messages",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"user":            profile.User,
		"messages":        messages,
		"message_count":   profile.MessageCount,
		"following_count": profile.FollowingCount,
		"follower_count":  profile.FollowerCount,
		"like_count":      profile.LikeCount,
	})
}

// HandleFollowing lists the users this user follows.
func (h *UserHandler) HandleFollowing(c *fiber.Ctx) error {
	userID := c.Params("id")
	users, err := h.socialService.Following(userID)
	if err != nil {
		log.Printf("Error listing following for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve following",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleFollowers lists the users following this user.
func (h *UserHandler) HandleFollowers(c *fiber.Ctx) error {
	userID := c.Params("id")
	users, err := h.socialService.Followers(userID)
	if err != nil {
		log.Printf("Error listing followers for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve followers",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleLikes lists the messages this user has liked.
func (h *UserHandler) HandleLikes(c *fiber.Ctx) error {
	userID := c.Params("id")
	messages, err := h.socialService.LikedMessages(userID)
	if err != nil {
		log.Printf("Error listing likes for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve likes",
			"error":   err.Error(),
		})
	}
	return c.JSON(messages)
}

// HandleFollow makes the current user follow the target user. Following
// someone twice is benign.
func (h *UserHandler) HandleFollow(c *fiber.Ctx) error {
	currentUser := middleware.CurrentUser(c)
	targetID := c.Params("id")

	created, err := h.socialService.Follow(currentUser.ID, targetID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("User with ID %s not found", targetID),
			})
		}
		log.Printf("Error following user %s: %v", targetID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not follow user",
			"error":   err.Error(),
		})
	}
	if !created {
		log.Printf("User %s already follows %s", currentUser.ID, targetID)
	}

	return c.Redirect(fmt.Sprintf("/users/%s/following", currentUser.ID), fiber.StatusFound)
}

// HandleStopFollowing makes the current user unfollow the target user.
func (h *UserHandler) HandleStopFollowing(c *fiber.Ctx) error {
	currentUser := middleware.CurrentUser(c)
	targetID := c.Params("id")

	if err := h.socialService.Unfollow(currentUser.ID, targetID); err != nil {
		log.Printf("Error unfollowing user %s: %v", targetID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not unfollow user",
			"error":   err.Error(),
		})
	}

	return c.Redirect(fmt.Sprintf("/users/%s/following", currentUser.ID), fiber.StatusFound)
}

// ProfileUpdateRequest represents the request body for profile edits. The
// current password must be supplied to authorize the change.
type ProfileUpdateRequest struct {
	Username       string `json:"username" validate:"omitempty,min=1,max=100"`
	Email          string `json:"email" validate:"omitempty,email"`
	ImageURL       string `json:"image_url" validate:"omitempty,max=255"`
	HeaderImageURL string `json:"header_image_url" validate:"omitempty,max=255"`
	Bio            string `json:"bio" validate:"omitempty,max=500"`
	Location       string `json:"location" validate:"omitempty,max=100"`
	Password       string `json:"password" validate:"required"`
}

// HandleUpdateProfile edits the current user's profile.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	currentUser := middleware.CurrentUser(c)

	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	update := services.ProfileUpdate{
		Username:       req.Username,
		Email:          req.Email,
		ImageURL:       req.ImageURL,
		HeaderImageURL: req.HeaderImageURL,
		Bio:            req.Bio,
		Location:       req.Location,
	}
	if _, err := h.userService.UpdateProfile(currentUser.ID, update, req.Password); err != nil {
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access unauthorized.",
			})
		case errors.Is(err, models.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Username or email already taken",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error updating profile for user %s: %v", currentUser.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not update profile",
				"error":   err.Error(),
			})
		}
	}

	return c.Redirect(fmt.Sprintf("/users/%s", currentUser.ID), fiber.StatusFound)
}

// HandleDeleteAccount deletes the current user's account together with their
// messages and graph edges, then clears the session.
func (h *UserHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	currentUser := middleware.CurrentUser(c)

	if err := h.userService.Delete(currentUser.ID); err != nil {
		log.Printf("Error deleting user %s: %v", currentUser.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete account",
			"error":   err.Error(),
		})
	}

	if sess, err := h.store.Get(c); err == nil {
		if err := middleware.ClearCurrentUser(sess); err != nil {
			log.Printf("Error destroying session: %v", err)
		}
	}

	return c.Redirect("/signup", fiber.StatusFound)
}
