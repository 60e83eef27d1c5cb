package ports

import (
	"context"

	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence for base user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes a user record. Used as the compensating action when
	// provider-profile creation fails after the user insert succeeded.
	Delete(ctx context.Context, id string) error
}
