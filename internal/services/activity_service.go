package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
	"github.com/hiphoppopotamus/Footsteps/internal/repositories"
)

// EventPublisher publishes activity lifecycle events to the message
// broker. *rabbitmq.Client satisfies it; tests pass a mock or nil.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ActivityEvent is the envelope published on activity mutations.
type ActivityEvent struct {
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`
	ActivityID uint64    `json:"activity_id"`
	CreatorID  uint64    `json:"creator_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityService handles business logic for activities. Reads are
// open to any authenticated user; mutations are gated on the creator
// through the auth service's access policy.
type ActivityService struct {
	activityRepo repositories.ActivityRepository
	auth         *AuthService
	publisher    EventPublisher
}

// NewActivityService creates a new ActivityService. The publisher may
// be nil, in which case events are skipped.
func NewActivityService(activityRepo repositories.ActivityRepository, auth *AuthService, publisher EventPublisher) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		auth:         auth,
		publisher:    publisher,
	}
}

// Create stores a new activity owned by the acting user and publishes
// an activity.created event.
func (s *ActivityService) Create(actor *models.User, activity *models.Activity) (*models.Activity, error) {
	activity.CreatorID = actor.ID
	if err := activity.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.activityRepo.Create(activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	s.publishEvent("activity.created", activity)
	return activity, nil
}

// GetAll returns every activity.
func (s *ActivityService) GetAll() ([]models.Activity, error) {
	return s.activityRepo.GetAll()
}

// GetByCreator returns a user's activities.
func (s *ActivityService) GetByCreator(creatorID uint64) ([]models.Activity, error) {
	return s.activityRepo.GetByCreator(creatorID)
}

// GetByID returns one activity, or ErrNotFound.
func (s *ActivityService) GetByID(id uint64) (*models.Activity, error) {
	activity, err := s.activityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("no activity with ID %d: %w", id, ErrNotFound)
	}
	return activity, nil
}

// Update applies an edit to an activity the acting user is authorized
// to modify and publishes an activity.updated event.
func (s *ActivityService) Update(actor *models.User, id uint64, updated *models.Activity) (*models.Activity, error) {
	activity, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !s.auth.CanAccess(actor.ID, activity.CreatorID) {
		return nil, fmt.Errorf("user %d may not modify activity %d: %w", actor.ID, id, ErrForbidden)
	}

	activity.Name = updated.Name
	activity.Description = updated.Description
	activity.Location = updated.Location
	activity.Continuous = updated.Continuous
	activity.StartTime = updated.StartTime
	activity.EndTime = updated.EndTime
	if err := activity.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.activityRepo.Save(activity); err != nil {
		return nil, fmt.Errorf("failed to save activity %d: %w", id, err)
	}
	s.publishEvent("activity.updated", activity)
	return activity, nil
}

// Delete removes an activity the acting user is authorized to modify
// and publishes an activity.deleted event.
func (s *ActivityService) Delete(actor *models.User, id uint64) error {
	activity, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !s.auth.CanAccess(actor.ID, activity.CreatorID) {
		return fmt.Errorf("user %d may not delete activity %d: %w", actor.ID, id, ErrForbidden)
	}
	if err := s.activityRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete activity %d: %w", id, err)
	}
	s.publishEvent("activity.deleted", activity)
	return nil
}

// publishEvent sends an event envelope, logging and continuing on
// broker failure: event delivery is not allowed to fail the request.
func (s *ActivityService) publishEvent(kind string, activity *models.Activity) {
	if s.publisher == nil {
		return
	}
	event := ActivityEvent{
		EventID:    uuid.New().String(),
		Kind:       kind,
		ActivityID: activity.ID,
		CreatorID:  activity.CreatorID,
		OccurredAt: s.auth.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event for activity %d: %v", kind, activity.ID, err)
		return
	}
	if err := s.publisher.Publish(kind, body); err != nil {
		log.Printf("Warning: failed to publish %s event for activity %d: %v", kind, activity.ID, err)
	}
}
