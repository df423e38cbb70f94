package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
	"github.com/hiphoppopotamus/Footsteps/internal/repositories"
)

const (
	// TokenLength is the number of characters in a login token.
	TokenLength = 30
	// DefaultTokenTimeout is the sliding session window: a token older
	// than this since its last authenticated use no longer grants
	// access. Overridable via NewAuthService / the TOKEN_TIMEOUT env key.
	DefaultTokenTimeout = time.Hour

	tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// AccessPolicy decides whether the acting user may touch a resource
// owned by the target user. Call sites never hardcode the rule, so a
// richer policy (admin roles) can be substituted without touching them.
type AccessPolicy func(actorID, targetID uint64) bool

// SelfOnlyPolicy allows a user to access exactly their own resources.
func SelfOnlyPolicy(actorID, targetID uint64) bool {
	return actorID == targetID
}

// AuthService is the token authority: it issues opaque bearer tokens
// at login, validates and slides their expiry on every authenticated
// request, and gates cross-user access through its AccessPolicy.
// Token state lives on the user record, so a new login implicitly
// invalidates the previous session (at most one per user).
type AuthService struct {
	userRepo     repositories.UserRepository
	tokenTimeout time.Duration
	policy       AccessPolicy

	// Now supplies the current time; tests swap it to drive expiry.
	Now func() time.Time
}

// NewAuthService creates a new AuthService with the self-only access
// policy. A non-positive timeout falls back to DefaultTokenTimeout.
func NewAuthService(userRepo repositories.UserRepository, tokenTimeout time.Duration) *AuthService {
	if tokenTimeout <= 0 {
		tokenTimeout = DefaultTokenTimeout
	}
	return &AuthService{
		userRepo:     userRepo,
		tokenTimeout: tokenTimeout,
		policy:       SelfOnlyPolicy,
		Now:          time.Now,
	}
}

// SetAccessPolicy replaces the access policy used by FindByUserID.
func (s *AuthService) SetAccessPolicy(policy AccessPolicy) {
	s.policy = policy
}

// CanAccess reports whether the acting user may touch resources owned
// by the target user under the current policy.
func (s *AuthService) CanAccess(actorID, targetID uint64) bool {
	return s.policy(actorID, targetID)
}

// Login verifies the credentials and issues a fresh token for the
// owning user, overwriting any previously issued one. Returns
// ErrUserNotFound if no user owns the email and ErrIncorrectPassword
// if the password does not match.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("login lookup failed: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("no user registered with that email: %w", ErrUserNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrIncorrectPassword
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	issuedAt := s.Now()
	user.Token = &token
	user.TokenIssuedAt = &issuedAt
	if err := s.userRepo.Save(user); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Logout clears the session holding the given token. Unknown tokens
// are a no-op, so calling it twice is safe.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	user, err := s.userRepo.GetByToken(token)
	if err != nil {
		return fmt.Errorf("logout lookup failed: %w", err)
	}
	if user == nil {
		return nil
	}
	user.Token = nil
	user.TokenIssuedAt = nil
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// FindByToken authenticates a request token. Expired tokens are
// cleared from their user before the call fails, so a retry with the
// same token also fails. On success the issue timestamp is reset to
// now, sliding the expiry window.
func (s *AuthService) FindByToken(token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("no token supplied: %w", ErrUnauthenticated)
	}
	user, err := s.userRepo.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("token lookup failed: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("unknown token: %w", ErrUnauthenticated)
	}

	now := s.Now()
	if user.TokenIssuedAt == nil || now.Sub(*user.TokenIssuedAt) > s.tokenTimeout {
		user.Token = nil
		user.TokenIssuedAt = nil
		if err := s.userRepo.Save(user); err != nil {
			return nil, fmt.Errorf("failed to clear expired token: %w", err)
		}
		return nil, fmt.Errorf("token expired: %w", ErrUnauthenticated)
	}

	user.TokenIssuedAt = &now
	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to refresh token window: %w", err)
	}
	return user, nil
}

// FindByUserID authenticates the token and resolves the user with the
// given id, applying the access policy when the target is not the
// caller. Self-access skips the policy; it is equivalent under any
// policy that grants it.
func (s *AuthService) FindByUserID(token string, id uint64) (*models.User, error) {
	actor, err := s.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if actor.ID == id {
		return actor, nil
	}
	if !s.policy(actor.ID, id) {
		return nil, fmt.Errorf("user %d may not access user %d: %w", actor.ID, id, ErrForbidden)
	}
	target, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("target lookup failed: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("no user with ID %d: %w", id, ErrNotFound)
	}
	return target, nil
}

// generateToken draws TokenLength characters from tokenAlphabet using
// a cryptographically secure source. Tokens are unguessable and, at 30
// alphanumeric characters, collisions are negligible.
func generateToken() (string, error) {
	buf := make([]byte, TokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
