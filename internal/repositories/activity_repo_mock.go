package repositories

import (
	"sync"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
)

// MockActivityRepository is an in-memory implementation of
// ActivityRepository, used to wire the app without a database and in
// service tests.
type MockActivityRepository struct {
	activities map[uint64]models.Activity
	nextID     uint64
	mu         sync.RWMutex
}

// NewMockActivityRepository creates a new instance of MockActivityRepository.
func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{
		activities: make(map[uint64]models.Activity),
		nextID:     1,
	}
}

// Create stores a new activity, assigning an ID if none is set.
func (r *MockActivityRepository) Create(activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if activity.ID == 0 {
		activity.ID = r.nextID
	}
	if activity.ID >= r.nextID {
		r.nextID = activity.ID + 1
	}
	r.activities[activity.ID] = *activity
	return nil
}

// GetAll returns all activities.
func (r *MockActivityRepository) GetAll() ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Activity, 0, len(r.activities))
	for _, activity := range r.activities {
		list = append(list, activity)
	}
	return list, nil
}

// GetByCreator returns the activities created by one user.
func (r *MockActivityRepository) GetByCreator(creatorID uint64) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Activity
	for _, activity := range r.activities {
		if activity.CreatorID == creatorID {
			list = append(list, activity)
		}
	}
	return list, nil
}

// GetByID returns a single activity, or (nil, nil) if absent.
func (r *MockActivityRepository) GetByID(id uint64) (*models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[id]
	if !ok {
		return nil, nil
	}
	return &activity, nil
}

// Save overwrites a stored activity.
func (r *MockActivityRepository) Save(activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activities[activity.ID] = *activity
	return nil
}

// Delete removes an activity; deleting an absent ID is a no-op.
func (r *MockActivityRepository) Delete(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.activities, id)
	return nil
}
