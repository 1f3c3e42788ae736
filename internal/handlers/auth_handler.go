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

// AuthHandler handles HTTP requests for signup, login and logout.
type AuthHandler struct {
	userService  *services.UserService
	tokenService *services.TokenService
	store        *session.Store
	validate     *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService, tokenService *services.TokenService, store *session.Store) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		store:        store,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignup)
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", h.HandleLogout)
}

// SignupRequest represents the request body for signup. The password rule
// lives in the user service so it is enforced before any persistence attempt.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// HandleSignup creates a new account and logs it in.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
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

	user, err := h.userService.Signup(req.Username, req.Email, req.Password)
	if err != nil {
		log.Printf("Error signing up user %s: %v", req.Username, err)
		switch {
		case errors.Is(err, models.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		case errors.Is(err, models.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Username or email already taken",
				"error":   err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not sign up user",
				"error":   err.Error(),
			})
		}
	}

	if err := h.logIn(c, user.ID); err != nil {
		log.Printf("Error creating session for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create session",
		})
	}

	return c.Redirect("/", fiber.StatusFound)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user, establishes the session and hands back an
// API token for non-browser clients.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid credentials.",
			})
		}
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log in",
		})
	}

	if err := h.logIn(c, user.ID); err != nil {
		log.Printf("Error creating session for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create session",
		})
	}

	token, err := h.tokenService.Issue(user)
	if err != nil {
		log.Printf("Error issuing token for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not issue token",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Hello, %s!", user.Username),
		"token":   token,
		"user":    user,
	})
}

// HandleLogout clears the current session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		if err := middleware.ClearCurrentUser(sess); err != nil {
			log.Printf("Error destroying session: %v", err)
		}
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// logIn stores the user id in a fresh session.
func (h *AuthHandler) logIn(c *fiber.Ctx, userID string) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	return middleware.SetCurrentUser(sess, userID)
}
