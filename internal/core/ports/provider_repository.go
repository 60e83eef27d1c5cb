package ports

import (
	"context"

	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// ListProvidersFilter carries the query parameters for the provider directory.
type ListProvidersFilter struct {
	Query       string // optional: case-insensitive partial match on name
	ServiceType string // optional: exact match on service_type
	Verified    bool   // true = only verified providers
}

// ProviderRepository defines persistence for service-provider profiles.
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error)
	FindByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
	// FindByUserID resolves the profile owned by a base user account. Every
	// ownership-scoped operation goes through this lookup.
	FindByUserID(ctx context.Context, userID string) (*domain.ServiceProvider, error)
	Update(ctx context.Context, p *domain.ServiceProvider) error
	AddPortfolioEntry(ctx context.Context, providerID string, entry domain.PortfolioEntry) error
	List(ctx context.Context, filter ListProvidersFilter) ([]*domain.ServiceProvider, error)
}
