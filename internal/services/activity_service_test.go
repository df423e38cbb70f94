package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
	"github.com/hiphoppopotamus/Footsteps/internal/repositories"
	"github.com/hiphoppopotamus/Footsteps/internal/services"
)

// MockPublisher is a mock implementation of services.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func newActivityService(publisher services.EventPublisher) (*services.ActivityService, *repositories.MockActivityRepository) {
	repo := repositories.NewMockActivityRepository()
	authService := services.NewAuthService(newFakeUserRepo(), time.Hour)
	return services.NewActivityService(repo, authService, publisher), repo
}

func timePtr(t time.Time) *time.Time { return &t }

func TestActivityService_Create(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", "activity.created", mock.Anything).Return(nil).Once()

	activityService, _ := newActivityService(publisher)
	actor := &models.User{ID: 5}

	created, err := activityService.Create(actor, &models.Activity{
		Name:       "Morning run",
		Location:   "Hagley Park",
		Continuous: true,
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, uint64(5), created.CreatorID)
	publisher.AssertExpectations(t)

	// The published envelope names the activity and its creator.
	body := publisher.Calls[0].Arguments.Get(1).([]byte)
	var event services.ActivityEvent
	assert.NoError(t, json.Unmarshal(body, &event))
	assert.Equal(t, "activity.created", event.Kind)
	assert.Equal(t, created.ID, event.ActivityID)
	assert.Equal(t, uint64(5), event.CreatorID)
	assert.NotEmpty(t, event.EventID)
}

func TestActivityService_CreateValidatesTimeRange(t *testing.T) {
	activityService, _ := newActivityService(nil)
	actor := &models.User{ID: 5}

	start := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)

	// Duration activities need both endpoints, in order.
	_, err := activityService.Create(actor, &models.Activity{Name: "Race"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = activityService.Create(actor, &models.Activity{
		Name:      "Race",
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(-time.Hour)),
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = activityService.Create(actor, &models.Activity{Name: ""})
	assert.ErrorIs(t, err, services.ErrValidation)

	created, err := activityService.Create(actor, &models.Activity{
		Name:      "Race",
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(2 * time.Hour)),
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestActivityService_GetByID(t *testing.T) {
	activityService, _ := newActivityService(nil)
	actor := &models.User{ID: 5}

	created, err := activityService.Create(actor, &models.Activity{Name: "Hike", Continuous: true})
	assert.NoError(t, err)

	activity, err := activityService.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Hike", activity.Name)

	_, err = activityService.GetByID(999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestActivityService_UpdateGatedOnCreator(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	activityService, _ := newActivityService(publisher)
	owner := &models.User{ID: 5}
	other := &models.User{ID: 6}

	created, err := activityService.Create(owner, &models.Activity{Name: "Hike", Continuous: true})
	assert.NoError(t, err)

	// Someone else cannot edit it.
	_, err = activityService.Update(other, created.ID, &models.Activity{Name: "Stolen", Continuous: true})
	assert.ErrorIs(t, err, services.ErrForbidden)

	// The owner can.
	updated, err := activityService.Update(owner, created.ID, &models.Activity{Name: "Long hike", Continuous: true})
	assert.NoError(t, err)
	assert.Equal(t, "Long hike", updated.Name)
	assert.Equal(t, uint64(5), updated.CreatorID)

	publisher.AssertCalled(t, "Publish", "activity.updated", mock.Anything)

	_, err = activityService.Update(owner, 999, &models.Activity{Name: "Ghost", Continuous: true})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestActivityService_DeleteGatedOnCreator(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	activityService, repo := newActivityService(publisher)
	owner := &models.User{ID: 5}
	other := &models.User{ID: 6}

	created, err := activityService.Create(owner, &models.Activity{Name: "Hike", Continuous: true})
	assert.NoError(t, err)

	assert.ErrorIs(t, activityService.Delete(other, created.ID), services.ErrForbidden)

	assert.NoError(t, activityService.Delete(owner, created.ID))
	publisher.AssertCalled(t, "Publish", "activity.deleted", mock.Anything)

	gone, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, activityService.Delete(owner, created.ID), services.ErrNotFound)
}

func TestActivityService_NilPublisherIsSafe(t *testing.T) {
	activityService, _ := newActivityService(nil)
	actor := &models.User{ID: 5}

	created, err := activityService.Create(actor, &models.Activity{Name: "Swim", Continuous: true})
	assert.NoError(t, err)
	assert.NoError(t, activityService.Delete(actor, created.ID))
}

func TestActivityService_PublisherFailureDoesNotFailRequest(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError)

	activityService, _ := newActivityService(publisher)
	actor := &models.User{ID: 5}

	created, err := activityService.Create(actor, &models.Activity{Name: "Row", Continuous: true})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestActivityService_GetByCreator(t *testing.T) {
	activityService, _ := newActivityService(nil)
	jane := &models.User{ID: 5}
	john := &models.User{ID: 6}

	_, err := activityService.Create(jane, &models.Activity{Name: "Run", Continuous: true})
	assert.NoError(t, err)
	_, err = activityService.Create(john, &models.Activity{Name: "Swim", Continuous: true})
	assert.NoError(t, err)

	mine, err := activityService.GetByCreator(5)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "Run", mine[0].Name)

	all, err := activityService.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
