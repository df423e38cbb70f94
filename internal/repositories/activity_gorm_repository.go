package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
)

// GORMActivityRepository is a GORM implementation of ActivityRepository.
type GORMActivityRepository struct {
	db *gorm.DB
}

// NewGORMActivityRepository creates a new instance of GORMActivityRepository.
func NewGORMActivityRepository(db *gorm.DB) *GORMActivityRepository {
	return &GORMActivityRepository{
		db: db,
	}
}

// Create inserts a new activity.
func (r *GORMActivityRepository) Create(activity *models.Activity) error {
	if err := r.db.Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetAll returns every stored activity.
func (r *GORMActivityRepository) GetAll() ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// GetByCreator returns the activities created by one user.
func (r *GORMActivityRepository) GetByCreator(creatorID uint64) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.Where("creator_id = ?", creatorID).Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities for user %d: %w", creatorID, err)
	}
	return activities, nil
}

// GetByID retrieves a single activity.
func (r *GORMActivityRepository) GetByID(id uint64) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activity %d: %w", id, err)
	}
	return &activity, nil
}

// Save persists mutations to an existing activity.
func (r *GORMActivityRepository) Save(activity *models.Activity) error {
	if err := r.db.Save(activity).Error; err != nil {
		return fmt.Errorf("failed to save activity %d: %w", activity.ID, err)
	}
	return nil
}

// Delete removes an activity.
func (r *GORMActivityRepository) Delete(id uint64) error {
	if err := r.db.Delete(&models.Activity{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete activity %d: %w", id, err)
	}
	return nil
}
