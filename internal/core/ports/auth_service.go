package ports

import (
	"context"

	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// UpdateProfileInput carries the updatable fields of a base account. Empty
// fields are left unchanged.
type UpdateProfileInput struct {
	Name     string
	Password string
}

// AuthService implements registration, login and profile management for base
// user accounts.
type AuthService interface {
	// Register creates a regular user and returns a signed token plus the
	// created account.
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	// UpdateMembership activates a premium tier on the account for one year.
	UpdateMembership(ctx context.Context, userID, tier string) (*domain.User, error)
}
