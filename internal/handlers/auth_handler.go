package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hiphoppopotamus/Footsteps/internal/middleware"
	"github.com/hiphoppopotamus/Footsteps/internal/services"
)

// AuthHandler handles HTTP requests for login and logout.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public login route.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers the routes that need a session.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/logout", h.HandleLogout)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and issues a session token. A new
// login replaces any session the user already had.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		return serviceError(c, "Authentication failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleLogout ends the presenting session. Logging out twice, or with
// a token nobody holds, still succeeds.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token := c.Get(middleware.TokenHeader)
	if err := h.authService.Logout(token); err != nil {
		log.Printf("Logout failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log out",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Logout successful",
	})
}
