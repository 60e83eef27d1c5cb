package ports

import (
	"context"

	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// RegisterProviderInput carries the multipart registration form. LicenseFile
// is the stored path of the first uploaded license document, empty when the
// registrant attached none.
type RegisterProviderInput struct {
	Name        string
	Email       string
	Password    string
	ServiceType string
	Experience  string
	Location    string
	LicenseFile string
}

// UpdateProviderProfileInput carries the updatable profile fields. Empty
// fields are left unchanged.
type UpdateProviderProfileInput struct {
	Name        string
	ServiceType string
	Experience  string
	Location    string
}

// PortfolioInput is a portfolio entry submitted by a verified provider.
type PortfolioInput struct {
	ProjectID   string
	Description string
	Images      []string
}

// EstimateInput describes the work a client wants priced.
type EstimateInput struct {
	Category     string
	Requirements string
}

// Estimate is a rough, non-binding cost and timeline projection.
type Estimate struct {
	Category      string  `json:"category"`
	Requirements  string  `json:"requirements,omitempty"`
	EstimatedCost float64 `json:"estimated_cost"`
	Timeline      string  `json:"timeline"`
}

// ProviderService implements provider registration and the public directory.
type ProviderService interface {
	// Register creates the base user account and the linked provider
	// profile, then issues a token for the new user.
	Register(ctx context.Context, input RegisterProviderInput) (string, *domain.User, *domain.ServiceProvider, error)
	List(ctx context.Context, filter ListProvidersFilter) ([]*domain.ServiceProvider, error)
	Get(ctx context.Context, id string) (*domain.ServiceProvider, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProviderProfileInput) (*domain.ServiceProvider, error)
	AddPortfolio(ctx context.Context, userID string, input PortfolioInput) (*domain.ServiceProvider, error)
	Estimate(input EstimateInput) Estimate
}
