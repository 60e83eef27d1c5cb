package domain

import (
	"errors"
	"time"
)

var ErrProviderNotFound = errors.New("service provider not found")
var ErrProviderNotVerified = errors.New("provider not verified")

// PortfolioEntry is a completed project showcased on a provider profile.
type PortfolioEntry struct {
	ProjectID   string    `json:"project_id" bson:"project_id"`
	Description string    `json:"description" bson:"description"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	AddedAt     time.Time `json:"added_at" bson:"added_at"`
}

// ServiceProvider extends a base User account with marketplace attributes.
// Exactly one profile exists per user with role serviceProvider; UserID is a
// non-owning back-reference.
type ServiceProvider struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	Name        string           `json:"name" bson:"name"`
	Email       string           `json:"email" bson:"email"`
	UserID      string           `json:"user_id" bson:"user_id"`
	ServiceType string           `json:"service_type,omitempty" bson:"service_type,omitempty"`
	Experience  string           `json:"experience,omitempty" bson:"experience,omitempty"`
	Location    string           `json:"location,omitempty" bson:"location,omitempty"`
	LicenseFile string           `json:"license_file,omitempty" bson:"license_file,omitempty"`
	Verified    bool             `json:"verified" bson:"verified"`
	Portfolio   []PortfolioEntry `json:"portfolio,omitempty" bson:"portfolio,omitempty"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" bson:"updated_at"`
}
