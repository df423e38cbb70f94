package services

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
	"github.com/hiphoppopotamus/Footsteps/internal/repositories"
)

// UserService handles registration, profile editing and account
// deletion. All cross-user operations go through the auth service so
// the access policy is applied in one place.
type UserService struct {
	userRepo repositories.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
	}
}

// Register validates and persists a new user, then logs them straight
// in and returns the issued token. The caller supplies the plaintext
// password separately; only its bcrypt hash is stored.
func (s *UserService) Register(user *models.User, password string) (string, error) {
	if err := user.Validate(s.auth.Now()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is required", ErrValidation)
	}
	if err := s.validateEmails(user.Emails, 0); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}
	log.Printf("Registered user %d with primary email %s", user.ID, user.PrimaryEmail())

	token, err := s.auth.Login(user.PrimaryEmail(), password)
	if err != nil {
		return "", fmt.Errorf("failed to start session for new user: %w", err)
	}
	return token, nil
}

// UpdateProfileRequest carries a partial profile edit; nil fields are
// left untouched.
type UpdateProfileRequest struct {
	FirstName    *string      `json:"firstname"`
	MiddleName   *string      `json:"middlename"`
	LastName     *string      `json:"lastname"`
	NickName     *string      `json:"nickname"`
	Bio          *string      `json:"bio"`
	Gender       *string      `json:"gender"`
	DateOfBirth  *models.Date `json:"date_of_birth"`
	FitnessLevel *int         `json:"fitness"`
	Password     *string      `json:"password"`
}

// UpdateProfile applies a partial edit to the user with the given id,
// provided the token's owner is authorized for that profile. The
// merged result is re-validated before it is persisted.
func (s *UserService) UpdateProfile(token string, targetID uint64, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.auth.FindByUserID(token, targetID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		user.MiddleName = *req.MiddleName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.NickName != nil {
		user.NickName = *req.NickName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = *req.DateOfBirth
	}
	if req.FitnessLevel != nil {
		user.FitnessLevel = *req.FitnessLevel
	}
	if err := user.Validate(s.auth.Now()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if req.Password != nil {
		if *req.Password == "" {
			return nil, fmt.Errorf("%w: password may not be empty", ErrValidation)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save profile %d: %w", targetID, err)
	}
	return user, nil
}

// UpdateEmails replaces the email set of the target user: one primary
// address plus any additional ones, globally unique.
func (s *UserService) UpdateEmails(token string, targetID uint64, primary string, additional []string) (*models.User, error) {
	user, err := s.auth.FindByUserID(token, targetID)
	if err != nil {
		return nil, err
	}

	emails := []models.Email{{UserID: user.ID, Address: primary, IsPrimary: true}}
	for _, address := range additional {
		emails = append(emails, models.Email{UserID: user.ID, Address: address})
	}
	if err := s.validateEmails(emails, user.ID); err != nil {
		return nil, err
	}

	if err := s.userRepo.ReplaceEmails(user, emails); err != nil {
		return nil, fmt.Errorf("failed to save emails for user %d: %w", targetID, err)
	}
	return user, nil
}

// Delete removes the target user's account, cascading to their emails
// and implicitly revoking any live session.
func (s *UserService) Delete(token string, targetID uint64) error {
	user, err := s.auth.FindByUserID(token, targetID)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(user); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", targetID, err)
	}
	log.Printf("Deleted user %d", targetID)
	return nil
}

// validateEmails enforces the shape of an email set (one primary, the
// per-user cap) and the global uniqueness of each address. ownerID
// exempts addresses the owner already holds.
func (s *UserService) validateEmails(emails []models.Email, ownerID uint64) error {
	if len(emails) == 0 {
		return fmt.Errorf("%w: a primary email is required", ErrValidation)
	}
	if len(emails) > models.MaxEmailsPerUser {
		return fmt.Errorf("%w: at most %d emails per user", ErrValidation, models.MaxEmailsPerUser)
	}
	primaries := 0
	seen := make(map[string]bool, len(emails))
	for _, email := range emails {
		if email.Address == "" {
			return fmt.Errorf("%w: email address may not be empty", ErrValidation)
		}
		if seen[email.Address] {
			return fmt.Errorf("%w: duplicate email %s in request", ErrValidation, email.Address)
		}
		seen[email.Address] = true
		if email.IsPrimary {
			primaries++
		}
		owner, err := s.userRepo.GetByEmail(email.Address)
		if err != nil {
			return fmt.Errorf("email uniqueness check failed: %w", err)
		}
		if owner != nil && owner.ID != ownerID {
			return fmt.Errorf("%s: %w", email.Address, ErrEmailInUse)
		}
	}
	if primaries != 1 {
		return fmt.Errorf("%w: exactly one primary email is required", ErrValidation)
	}
	return nil
}
