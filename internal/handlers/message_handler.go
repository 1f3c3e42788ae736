package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/services"
)

// MessageHandler handles HTTP requests for warbles.
type MessageHandler struct {
	messageService *services.MessageService
	socialService  *services.SocialService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService, socialService *services.SocialService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		socialService:  socialService,
	}
}

// RegisterRoutes registers the message routes with the Fiber app. requireAuth
// gates every mutating route.
func (h *MessageHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	messageRoutes := router.Group("/messages")
	messageRoutes.Post("/new", requireAuth, h.HandleCreate)
	messageRoutes.Get("/:id", h.HandleShow)
	messageRoutes.Post("/:id/delete", requireAuth, h.HandleDelete)
	messageRoutes.Post("/:id/like", requireAuth, h.HandleToggleLike)
}

// CreateMessageRequest represents the request body for posting a warble.
type CreateMessageRequest struct {
	Text string `json:"text"`
}

// HandleCreate posts a new warble for the current user.
func (h *MessageHandler) HandleCreate(c *fiber.Ctx) error {
	currentUser := middleware.CurrentUser(c)

	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing message body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.messageService.Post(currentUser.ID, req.Text); err != nil {
		if errors.Is(err, models.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		log.Printf("Error creating message for user %s: %v", currentUser.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create message",
			"error":   err.Error(),
		})
	}

	return c.Redirect(fmt.Sprintf("/users/%s", currentUser.ID), fiber.StatusFound)
}

// HandleShow renders a single warble with its like count.
func (h *MessageHandler) HandleShow(c *fiber.Ctx) error {
	messageID := c.Params("id")

	message, err := h.messageService.Get(messageID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Message with ID %s not found", messageID),
			})
		}
		log.Printf("Error getting message %s: %v", messageID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve message",
			"error":   err.Error(),
		})
	}

	likeCount, err := h.socialService.LikeCount(messageID)
	if err != nil {
		log.Printf("Error counting likes for message %s: %v", messageID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve message",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":    message,
		"like_count": likeCount,
	})
}

// HandleDelete deletes a warble. Only the owner may delete it; anyone else
// gets an authorization failure and the message stays put.
func (h *MessageHandler) HandleDelete(c *fiber.Ctx) error {
	currentUser := middleware.CurrentUser(c)
	messageID := c.Params("id")

	if err := h.messageService.Delete(currentUser.ID, messageID); err != nil {
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access unauthorized.",
			})
		case errors.Is(err, models.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Message with ID %s not found", messageID),
			})
		default:
			log.Printf("Error deleting message %s: %v", messageID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not delete message",
				"error":   err.Error(),
			})
		}
	}

	return c.Redirect(fmt.Sprintf("/users/%s", currentUser.ID), fiber.StatusFound)
}

// HandleToggleLike likes the warble when the current user has not liked it
// yet and unlikes it otherwise.
func (h *MessageHandler) HandleToggleLike(c *fiber.Ctx) error {
	currentUser := middleware.CurrentUser(c)
	messageID := c.Params("id")

	liked, err := h.socialService.ToggleLike(currentUser.ID, messageID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Message with ID %s not found", messageID),
			})
		}
		log.Printf("Error toggling like on message %s: %v", messageID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not toggle like",
			"error":   err.Error(),
		})
	}
	log.Printf("User %s %s message %s", currentUser.ID, likedVerb(liked), messageID)

	return c.Redirect("/", fiber.StatusFound)
}

func likedVerb(liked bool) string {
	if liked {
		return "liked"
	}
	return "unliked"
}
