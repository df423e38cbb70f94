package repositories

import "github.com/hiphoppopotamus/Footsteps/internal/models"

// UserRepository is the credential store: it holds user records along
// with their login token state. Lookup methods return (nil, nil) when
// no user matches, reserving the error for store failures.
//
// Concurrent read-modify-write cycles against the same user are
// best-effort: the store serializes writes per row and the last write
// wins. Callers must not assume linearizable session mutation.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByToken(token string) (*models.User, error)
	GetByID(id uint64) (*models.User, error)
	// Save persists the user row itself; email rows are only written
	// through Create and ReplaceEmails.
	Save(user *models.User) error
	// ReplaceEmails swaps the user's email set atomically.
	ReplaceEmails(user *models.User, emails []models.Email) error
	Delete(user *models.User) error
}
