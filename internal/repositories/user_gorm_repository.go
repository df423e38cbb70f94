package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user together with their emails.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves the user owning the given address, whether it
// is their primary or a secondary email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.
		Joins("JOIN emails ON emails.user_id = users.id").
		Where("emails.address = ?", email).
		Preload("Emails").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetByToken retrieves the user holding the given login token.
func (r *GORMUserRepository) GetByToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Emails").First(&user, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Emails").First(&user, "users.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// Save persists mutations to an existing user row. Email rows are
// left alone; they change through Create and ReplaceEmails only.
func (r *GORMUserRepository) Save(user *models.User) error {
	if err := r.db.Omit(clause.Associations).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}
	return nil
}

// ReplaceEmails swaps the user's email set in one transaction so the
// global address uniqueness index never sees a half-applied state.
func (r *GORMUserRepository) ReplaceEmails(user *models.User, emails []models.Email) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Email{}).Error; err != nil {
			return err
		}
		for i := range emails {
			emails[i].ID = 0
			emails[i].UserID = user.ID
		}
		return tx.Create(&emails).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace emails for user %d: %w", user.ID, err)
	}
	user.Emails = emails
	return nil
}

// Delete removes a user and their owned emails.
func (r *GORMUserRepository) Delete(user *models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Email{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", user.ID, err)
	}
	return nil
}
