package ports

import (
	"context"

	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// ProjectRepository defines persistence for projects. Every read and write is
// scoped by the owning provider id; a miss on either the project id or the
// owner is reported as domain.ErrProjectNotFound so callers cannot tell the
// two apart.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id, providerID string) (*domain.Project, error)
	// ListByProvider returns the provider's projects ordered by creation
	// time descending.
	ListByProvider(ctx context.Context, providerID string) ([]*domain.Project, error)
	// Update applies the given field set to the scoped document and returns
	// the updated project.
	Update(ctx context.Context, id, providerID string, fields map[string]any) (*domain.Project, error)
	Delete(ctx context.Context, id, providerID string) error
}
