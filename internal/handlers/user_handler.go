package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hiphoppopotamus/Footsteps/internal/middleware"
	"github.com/hiphoppopotamus/Footsteps/internal/models"
	"github.com/hiphoppopotamus/Footsteps/internal/services"
)

// UserHandler handles HTTP requests for registration and profiles.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public registration route.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/profiles", h.HandleRegister)
}

// RegisterProtectedRoutes registers the profile routes that need a
// session token.
func (h *UserHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/profiles", h.HandleGetOwnProfile)
	router.Get("/profiles/:profileId", h.HandleGetProfile)
	router.Put("/profiles/:profileId", h.HandleEditProfile)
	router.Put("/profiles/:profileId/emails", h.HandleEditEmails)
	router.Delete("/profiles/:profileId", h.HandleDeleteProfile)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	FirstName        string      `json:"firstname" validate:"required"`
	MiddleName       string      `json:"middlename"`
	LastName         string      `json:"lastname" validate:"required"`
	NickName         string      `json:"nickname"`
	Bio              string      `json:"bio"`
	Gender           string      `json:"gender" validate:"required,oneof=male female non_binary"`
	DateOfBirth      models.Date `json:"date_of_birth" validate:"required"`
	FitnessLevel     int         `json:"fitness" validate:"min=0,max=4"`
	PrimaryEmail     string      `json:"primary_email" validate:"required,email"`
	AdditionalEmails []string    `json:"additional_email" validate:"dive,email"`
	Password         string      `json:"password" validate:"required,min=8"`
}

// HandleRegister creates a new user and starts their first session.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		NickName:     req.NickName,
		Bio:          req.Bio,
		Gender:       req.Gender,
		DateOfBirth:  req.DateOfBirth,
		FitnessLevel: req.FitnessLevel,
		Emails:       []models.Email{{Address: req.PrimaryEmail, IsPrimary: true}},
	}
	for _, address := range req.AdditionalEmails {
		user.Emails = append(user.Emails, models.Email{Address: address})
	}

	token, err := h.userService.Register(user, req.Password)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return serviceError(c, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// HandleGetOwnProfile returns the profile of the session user.
func (h *UserHandler) HandleGetOwnProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.AuthenticatedUser(c))
}

// HandleGetProfile returns the profile with the requested id, if the
// session user may access it.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return badRequest(c, err)
	}

	user, err := h.authService.FindByUserID(c.Get(middleware.TokenHeader), profileID)
	if err != nil {
		log.Printf("Error fetching profile %d: %v", profileID, err)
		return serviceError(c, "Could not retrieve profile", err)
	}
	return c.JSON(user)
}

// HandleEditProfile applies a partial profile edit.
func (h *UserHandler) HandleEditProfile(c *fiber.Ctx) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return badRequest(c, err)
	}

	var req services.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile edit body: %v", err)
		return badRequest(c, err)
	}

	user, err := h.userService.UpdateProfile(c.Get(middleware.TokenHeader), profileID, req)
	if err != nil {
		log.Printf("Error editing profile %d: %v", profileID, err)
		return serviceError(c, "Could not update profile", err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// EmailUpdateRequest represents the request body for replacing a
// user's email set.
type EmailUpdateRequest struct {
	PrimaryEmail     string   `json:"primary_email" validate:"required,email"`
	AdditionalEmails []string `json:"additional_email" validate:"dive,email"`
}

// HandleEditEmails replaces the target user's email addresses.
func (h *UserHandler) HandleEditEmails(c *fiber.Ctx) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return badRequest(c, err)
	}

	var req EmailUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing email edit body: %v", err)
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := h.userService.UpdateEmails(c.Get(middleware.TokenHeader), profileID, req.PrimaryEmail, req.AdditionalEmails)
	if err != nil {
		log.Printf("Error editing emails for profile %d: %v", profileID, err)
		return serviceError(c, "Could not update emails", err)
	}
	return c.JSON(fiber.Map{
		"message": "Emails updated successfully",
		"user":    user,
	})
}

// HandleDeleteProfile removes a user account.
func (h *UserHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.userService.Delete(c.Get(middleware.TokenHeader), profileID); err != nil {
		log.Printf("Error deleting profile %d: %v", profileID, err)
		return serviceError(c, "Could not delete profile", err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile deleted successfully",
	})
}

func parseProfileID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("profileId"), 10, 64)
}
