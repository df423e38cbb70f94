package models

import (
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// Gender values accepted for a user profile.
const (
	GenderMale      = "male"
	GenderFemale    = "female"
	GenderNonBinary = "non_binary"
)

// Age limits enforced at registration and profile edit.
const (
	MinAge = 13
	MaxAge = 150
)

var nameFormat = regexp.MustCompile(`^[a-zA-Z]+$`)

// User represents a member of the fitness community.
// Token and TokenIssuedAt carry the current login session: a nil Token
// means the user is logged out. At most one token is live per user; a
// new login overwrites the previous one.
type User struct {
	ID            uint64     `json:"id" gorm:"primaryKey"`
	FirstName     string     `json:"firstname" gorm:"type:varchar(100)"`
	MiddleName    string     `json:"middlename" gorm:"type:varchar(100)"`
	LastName      string     `json:"lastname" gorm:"type:varchar(100)"`
	NickName      string     `json:"nickname" gorm:"type:varchar(100)"`
	Bio           string     `json:"bio"`
	Gender        string     `json:"gender" gorm:"type:varchar(16)"`
	DateOfBirth   Date       `json:"date_of_birth"`
	FitnessLevel  int        `json:"fitness"`
	PasswordHash  string     `json:"-" gorm:"type:varchar(255)"`
	Token         *string    `json:"-" gorm:"uniqueIndex;type:varchar(64)"`
	TokenIssuedAt *time.Time `json:"-"`
	Emails        []Email    `json:"emails" gorm:"constraint:OnDelete:CASCADE"`
	gorm.Model    `json:"-"`
}

// PrimaryEmail returns the address marked primary, or "" if the emails
// have not been loaded.
func (u *User) PrimaryEmail() string {
	for _, e := range u.Emails {
		if e.IsPrimary {
			return e.Address
		}
	}
	return ""
}

// Validate checks the identity attributes that registration and
// profile edits must uphold. It does not touch emails or the password,
// which are validated where they are set.
func (u *User) Validate(now time.Time) error {
	if !nameFormat.MatchString(u.FirstName) {
		return fmt.Errorf("first name must contain letters only")
	}
	if !nameFormat.MatchString(u.LastName) {
		return fmt.Errorf("last name must contain letters only")
	}
	if u.MiddleName != "" && !nameFormat.MatchString(u.MiddleName) {
		return fmt.Errorf("middle name must contain letters only")
	}
	switch u.Gender {
	case GenderMale, GenderFemale, GenderNonBinary:
	default:
		return fmt.Errorf("gender must be one of: male, female, non_binary")
	}
	if u.DateOfBirth.After(now.AddDate(-MinAge, 0, 0)) {
		return fmt.Errorf("users must be at least %d years old", MinAge)
	}
	if u.DateOfBirth.Before(now.AddDate(-MaxAge, 0, 0)) {
		return fmt.Errorf("date of birth must be within the last %d years", MaxAge)
	}
	return nil
}
