package repositories

import "github.com/hiphoppopotamus/Footsteps/internal/models"

// ActivityRepository defines the interface for activity data access.
// Lookups return (nil, nil) when no activity matches.
type ActivityRepository interface {
	Create(activity *models.Activity) error
	GetAll() ([]models.Activity, error)
	GetByCreator(creatorID uint64) ([]models.Activity, error)
	GetByID(id uint64) (*models.Activity, error)
	Save(activity *models.Activity) error
	Delete(id uint64) error
}
