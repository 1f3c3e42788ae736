package services

import (
	"fmt"
	"log"

	"warbler/internal/models"
	"warbler/internal/repositories"
	"warbler/pkg/events"
)

// MessageService handles business logic for warbles: posting, reading,
// deletion and the home timeline.
type MessageService struct {
	messageRepo repositories.MessageRepository
	followRepo  repositories.FollowRepository
	publisher   *events.Publisher
}

// NewMessageService creates a new MessageService. publisher may be nil, in
// which case no events are emitted.
func NewMessageService(
	messageRepo repositories.MessageRepository,
	followRepo repositories.FollowRepository,
	publisher *events.Publisher,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		followRepo:  followRepo,
		publisher:   publisher,
	}
}

// Post creates a new message owned by userID. Text must be non-empty and at
// most models.MaxMessageLength characters; both are checked before any
// persistence attempt.
func (s *MessageService) Post(userID, text string) (*models.Message, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: message text must not be empty", models.ErrValidation)
	}
	if len([]rune(text)) > models.MaxMessageLength {
		return nil, fmt.Errorf("%w: message text exceeds %d characters", models.ErrValidation, models.MaxMessageLength)
	}

	message := &models.Message{
		Text:   text,
		UserID: userID,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"message_id": message.ID,
			"user_id":    message.UserID,
			"text":       message.Text,
		}
		if err := s.publisher.Publish(events.MessageCreated, payload); err != nil {
			log.Printf("Warning: failed to publish %s event for message %s: %v", events.MessageCreated, message.ID, err)
		}
	}

	return message, nil
}

// Get retrieves a single message.
func (s *MessageService) Get(id string) (*models.Message, error) {
	return s.messageRepo.GetByID(id)
}

// ByUser retrieves the messages a user owns, newest first.
func (s *MessageService) ByUser(userID string) ([]models.Message, error) {
	return s.messageRepo.GetByUser(userID)
}

// Delete removes a message. Only the owner may delete it; anyone else gets
// ErrUnauthorized and the row stays intact.
func (s *MessageService) Delete(actorID, messageID string) error {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		return err
	}
	if message.UserID != actorID {
		return fmt.Errorf("%w: message %s is not owned by user %s", models.ErrUnauthorized, messageID, actorID)
	}
	return s.messageRepo.Delete(messageID)
}

// Timeline returns the newest messages from userID and everyone they follow.
func (s *MessageService) Timeline(userID string, limit int) ([]models.Message, error) {
	following, err := s.followRepo.Following(userID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(following)+1)
	authorIDs = append(authorIDs, userID)
	for _, user := range following {
		authorIDs = append(authorIDs, user.ID)
	}

	return s.messageRepo.Timeline(authorIDs, limit)
}
