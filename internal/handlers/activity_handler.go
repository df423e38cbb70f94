package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hiphoppopotamus/Footsteps/internal/middleware"
	"github.com/hiphoppopotamus/Footsteps/internal/models"
	"github.com/hiphoppopotamus/Footsteps/internal/services"
)

// ActivityHandler handles HTTP requests for activities.
type ActivityHandler struct {
	activityService *services.ActivityService
	validate        *validator.Validate
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		validate:        validator.New(),
	}
}

// RegisterProtectedRoutes registers the activity routes; all of them
// need a session token.
func (h *ActivityHandler) RegisterProtectedRoutes(router fiber.Router) {
	activityRoutes := router.Group("/activities")
	activityRoutes.Get("/", h.HandleGetActivities)
	activityRoutes.Post("/", h.HandleCreateActivity)
	activityRoutes.Get("/:activityId", h.HandleGetActivityByID)
	activityRoutes.Put("/:activityId", h.HandleUpdateActivity)
	activityRoutes.Delete("/:activityId", h.HandleDeleteActivity)
}

// ActivityRequest represents the request body for creating or editing
// an activity.
type ActivityRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Continuous  bool       `json:"continuous"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

func (r ActivityRequest) toModel() *models.Activity {
	return &models.Activity{
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Continuous:  r.Continuous,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

// HandleGetActivities lists activities, optionally filtered to one
// creator with ?creator=<id>.
func (h *ActivityHandler) HandleGetActivities(c *fiber.Ctx) error {
	if creator := c.Query("creator"); creator != "" {
		creatorID, err := strconv.ParseUint(creator, 10, 64)
		if err != nil {
			return badRequest(c, err)
		}
		activities, err := h.activityService.GetByCreator(creatorID)
		if err != nil {
			log.Printf("Error listing activities for creator %d: %v", creatorID, err)
			return serviceError(c, "Could not retrieve activities", err)
		}
		return c.JSON(activities)
	}

	activities, err := h.activityService.GetAll()
	if err != nil {
		log.Printf("Error listing activities: %v", err)
		return serviceError(c, "Could not retrieve activities", err)
	}
	return c.JSON(activities)
}

// HandleGetActivityByID returns one activity.
func (h *ActivityHandler) HandleGetActivityByID(c *fiber.Ctx) error {
	activityID, err := parseActivityID(c)
	if err != nil {
		return badRequest(c, err)
	}

	activity, err := h.activityService.GetByID(activityID)
	if err != nil {
		log.Printf("Error getting activity %d: %v", activityID, err)
		return serviceError(c, "Could not retrieve activity", err)
	}
	return c.JSON(activity)
}

// HandleCreateActivity records a new activity owned by the session
// user.
func (h *ActivityHandler) HandleCreateActivity(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing activity body: %v", err)
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	activity, err := h.activityService.Create(middleware.AuthenticatedUser(c), req.toModel())
	if err != nil {
		log.Printf("Error creating activity: %v", err)
		return serviceError(c, "Could not create activity", err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// HandleUpdateActivity edits an activity the session user owns.
func (h *ActivityHandler) HandleUpdateActivity(c *fiber.Ctx) error {
	activityID, err := parseActivityID(c)
	if err != nil {
		return badRequest(c, err)
	}

	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing activity body: %v", err)
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	activity, err := h.activityService.Update(middleware.AuthenticatedUser(c), activityID, req.toModel())
	if err != nil {
		log.Printf("Error updating activity %d: %v", activityID, err)
		return serviceError(c, "Could not update activity", err)
	}
	return c.JSON(activity)
}

// HandleDeleteActivity removes an activity the session user owns.
func (h *ActivityHandler) HandleDeleteActivity(c *fiber.Ctx) error {
	activityID, err := parseActivityID(c)
	if err != nil {
		return badRequest(c, err)
	}

	if err := h.activityService.Delete(middleware.AuthenticatedUser(c), activityID); err != nil {
		log.Printf("Error deleting activity %d: %v", activityID, err)
		return serviceError(c, "Could not delete activity", err)
	}
	return c.JSON(fiber.Map{
		"message": "Activity deleted successfully",
	})
}

func parseActivityID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("activityId"), 10, 64)
}
