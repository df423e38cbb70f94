package services_test

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/hiphoppopotamus/Footsteps/internal/models"
)

// fakeUserRepo is an in-memory credential store for service tests,
// modeled on the mutex-map mock repositories used elsewhere. Lookups
// scan the map the way the real store scans its indexes, so token
// overwrites and clears behave like row updates.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint64]*models.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint64]*models.User),
		nextID: 1,
	}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	for i := range user.Emails {
		user.Emails[i].UserID = user.ID
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		for _, e := range user.Emails {
			if e.Address == email {
				return user, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Token != nil && *user.Token == token {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(id uint64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *fakeUserRepo) Save(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ReplaceEmails(user *models.User, emails []models.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range emails {
		emails[i].UserID = user.ID
	}
	user.Emails = emails
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, user.ID)
	return nil
}

// seedUser stores a registered user with a bcrypt-hashed password.
func seedUser(repo *fakeUserRepo, id uint64, email, password string) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		ID:           id,
		FirstName:    "Jane",
		LastName:     "Doe",
		Gender:       models.GenderFemale,
		DateOfBirth:  models.NewDate(1990, 4, 12),
		PasswordHash: string(hashed),
		Emails:       []models.Email{{UserID: id, Address: email, IsPrimary: true}},
	}
	repo.Create(user)
	return user
}
