package domain

import (
	"errors"
	"time"
)

const (
	RoleRegular         = "regular"
	RoleServiceProvider = "serviceProvider"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidMembershipTier = errors.New("invalid membership tier")

// Membership tiers sold through the premium storefront.
const (
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// ValidTier reports whether tier is a purchasable membership tier.
func ValidTier(tier string) bool {
	switch tier {
	case TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// Membership records an active premium subscription on a user account.
type Membership struct {
	Tier      string    `json:"tier" bson:"tier"`
	StartDate time.Time `json:"start_date" bson:"start_date"`
	EndDate   time.Time `json:"end_date" bson:"end_date"`
}

// User is a base account. Service providers additionally own a
// ServiceProvider profile linked back to their user id.
type User struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Name         string      `json:"name" bson:"name"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"password_hash"`
	Role         string      `json:"role" bson:"role"`
	Membership   *Membership `json:"membership,omitempty" bson:"membership,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// PublicUser is the projection returned by auth endpoints. It never carries
// the password hash.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the public-safe projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
