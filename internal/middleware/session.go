package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"warbler/internal/models"
	"warbler/internal/repositories"
	"warbler/internal/services"
)

// CurrUserKey is the session key holding the authenticated user's id.
const CurrUserKey = "curr_user"

// localsUserKey is where LoadCurrentUser stashes the resolved user on the
// request context.
const localsUserKey = "current_user"

// NewSessionStore creates the server-side session store shared by the auth
// handlers and the middleware below.
func NewSessionStore() *session.Store {
	return session.New()
}

// SetCurrentUser records the authenticated user's id in the session.
func SetCurrentUser(sess *session.Session, userID string) error {
	sess.Set(CurrUserKey, userID)
	return sess.Save()
}

// GetCurrentUser reads the authenticated user's id from the session; ok is
// false when nobody is logged in.
func GetCurrentUser(sess *session.Session) (userID string, ok bool) {
	id, ok := sess.Get(CurrUserKey).(string)
	return id, ok && id != ""
}

// ClearCurrentUser drops the session and with it the current user.
func ClearCurrentUser(sess *session.Session) error {
	return sess.Destroy()
}

// LoadCurrentUser resolves the current user for every request: the session
// first, then an Authorization bearer token for API clients. The resolved id
// is always checked against the user store, so a stale or fabricated id
// behaves like being logged out rather than crashing downstream handlers.
func LoadCurrentUser(store *session.Store, users repositories.UserRepository, tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sess, err := store.Get(c); err == nil {
			if id, ok := GetCurrentUser(sess); ok {
				if user, err := users.GetByID(id); err == nil {
					c.Locals(localsUserKey, user)
					return c.Next()
				}
				// Session points at a user that no longer exists.
				log.Printf("Session referenced unknown user %s, treating as logged out", id)
			}
		}

		authHeader := c.Get("Authorization")
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			claims, err := tokens.Validate(parts[1])
			if err == nil {
				if id, ok := claims["user_id"].(string); ok {
					if user, err := users.GetByID(id); err == nil {
						c.Locals(localsUserKey, user)
					}
				}
			}
		}

		return c.Next()
	}
}

// RequireAuth gates mutating routes: without a resolved current user the
// request is rejected and the underlying mutation never happens.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Access unauthorized.",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by LoadCurrentUser, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}
