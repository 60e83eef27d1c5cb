package ports

import (
	"context"

	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// CreateProjectInput carries the client-supplied fields of a new project.
// The owning provider is resolved server-side from the caller's identity.
type CreateProjectInput struct {
	Title       string
	Description string
	Client      string
	Category    string
	Budget      float64
	Location    string
}

// ProjectWithClient is a project expanded with the client's public details,
// the equivalent of the directory's populate on listings.
type ProjectWithClient struct {
	*domain.Project
	ClientInfo *domain.ClientSummary `json:"client_info,omitempty"`
}

// ProjectService implements ownership-scoped project CRUD. Every operation
// resolves the caller's provider profile first; operations on projects owned
// by another provider fail with domain.ErrProjectNotFound.
type ProjectService interface {
	Create(ctx context.Context, userID string, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, userID string) ([]ProjectWithClient, error)
	Get(ctx context.Context, userID, projectID string) (*ProjectWithClient, error)
	// Update applies the allow-listed fields. service_provider and client
	// are silently dropped; any other unknown field is rejected with
	// *domain.UnknownFieldError.
	Update(ctx context.Context, userID, projectID string, fields map[string]any) (*domain.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
}
