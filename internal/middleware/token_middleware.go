package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
	"github.com/hiphoppopotamus/Footsteps/internal/services"
)

// TokenHeader is the request header carrying the login token.
const TokenHeader = "Token"

// userLocal is the Fiber locals key holding the authenticated user.
const userLocal = "authUser"

// TokenRequired is a Fiber middleware that authenticates the request's
// Token header. Each successful pass slides the session window; a
// missing, unknown or expired token stops the request with 401.
func TokenRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)

		user, err := authService.FindByToken(token)
		if err != nil {
			log.Printf("Token authentication failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// AuthenticatedUser returns the user resolved by TokenRequired, or nil
// outside a token-gated route.
func AuthenticatedUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}
