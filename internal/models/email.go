package models

// MaxEmailsPerUser bounds the primary plus additional addresses a user
// may register.
const MaxEmailsPerUser = 5

// Email is one address owned by a user. Addresses are unique across
// all users; exactly one per user is marked primary.
type Email struct {
	ID        uint64 `json:"id" gorm:"primaryKey"`
	UserID    uint64 `json:"-" gorm:"index"`
	Address   string `json:"address" gorm:"uniqueIndex;type:varchar(255)"`
	IsPrimary bool   `json:"is_primary"`
}
