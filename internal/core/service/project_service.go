package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

// updatableProjectFields is the explicit allow-list for partial updates.
// service_provider and client are immutable after creation and are dropped
// silently; any other field outside this set is rejected.
var updatableProjectFields = map[string]struct{}{
	"title":       {},
	"description": {},
	"status":      {},
	"category":    {},
	"budget":      {},
	"location":    {},
	"start_date":  {},
	"end_date":    {},
	"milestones":  {},
	"images":      {},
	"documents":   {},
}

var immutableProjectFields = map[string]struct{}{
	"service_provider": {},
	"client":           {},
}

// ProjectService implements ownership-scoped project CRUD. Every operation
// resolves the caller's provider profile first and scopes all queries to it.
type ProjectService struct {
	projects  ports.ProjectRepository
	providers ports.ProviderRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, providers ports.ProviderRepository, users ports.UserRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, providers: providers, users: users, logger: logger}
}

// Create persists a new project owned by the caller's provider profile.
func (s *ProjectService) Create(ctx context.Context, userID string, input ports.CreateProjectInput) (*domain.Project, error) {
	provider, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidCategory(input.Category) {
		return nil, domain.ErrInvalidProjectCategory
	}

	now := time.Now().UTC()
	project := &domain.Project{
		Title:           input.Title,
		Description:     input.Description,
		ServiceProvider: provider.ID,
		Client:          input.Client,
		Status:          domain.ProjectPending,
		Category:        input.Category,
		Budget:          input.Budget,
		Location:        input.Location,
		StartDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("provider_id", provider.ID).Msg("project created")
	return created, nil
}

// List returns the caller's projects, newest first, each expanded with the
// client's public details.
func (s *ProjectService) List(ctx context.Context, userID string) ([]ports.ProjectWithClient, error) {
	provider, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.ListByProvider(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProjectWithClient, 0, len(projects))
	clients := make(map[string]*domain.ClientSummary)
	for _, p := range projects {
		out = append(out, ports.ProjectWithClient{Project: p, ClientInfo: s.clientSummary(ctx, clients, p.Client)})
	}
	return out, nil
}

// Get returns a single project if owned by the caller. An ownership miss is
// indistinguishable from a missing project.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*ports.ProjectWithClient, error) {
	provider, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID, provider.ID)
	if err != nil {
		return nil, err
	}

	return &ports.ProjectWithClient{
		Project:    project,
		ClientInfo: s.clientSummary(ctx, make(map[string]*domain.ClientSummary), project.Client),
	}, nil
}

// Update applies the allow-listed fields to an owned project.
func (s *ProjectService) Update(ctx context.Context, userID, projectID string, fields map[string]any) (*domain.Project, error) {
	provider, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	clean := make(map[string]any, len(fields))
	for key, value := range fields {
		if _, immutable := immutableProjectFields[key]; immutable {
			continue
		}
		if _, ok := updatableProjectFields[key]; !ok {
			return nil, &domain.UnknownFieldError{Field: key}
		}
		coerced, err := coerceProjectField(key, value)
		if err != nil {
			return nil, err
		}
		clean[key] = coerced
	}

	if len(clean) == 0 {
		return s.projects.FindByID(ctx, projectID, provider.ID)
	}
	clean["updated_at"] = time.Now().UTC()

	return s.projects.Update(ctx, projectID, provider.ID, clean)
}

// Delete removes an owned project.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	provider, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.projects.Delete(ctx, projectID, provider.ID)
}

// clientSummary resolves a client id to its public projection, memoised in
// cache for the duration of one call. A dangling reference yields nil rather
// than failing the listing.
func (s *ProjectService) clientSummary(ctx context.Context, cache map[string]*domain.ClientSummary, clientID string) *domain.ClientSummary {
	if clientID == "" {
		return nil
	}
	if summary, ok := cache[clientID]; ok {
		return summary
	}

	user, err := s.users.FindByID(ctx, clientID)
	if err != nil {
		cache[clientID] = nil
		return nil
	}
	summary := &domain.ClientSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	cache[clientID] = summary
	return summary
}

// coerceProjectField turns the raw JSON value of an updatable field into its
// typed form and validates enum values.
func coerceProjectField(key string, value any) (any, error) {
	switch key {
	case "status":
		str, ok := value.(string)
		if !ok || !domain.ValidProjectStatus(str) {
			return nil, domain.ErrInvalidProjectStatus
		}
		return domain.ProjectStatus(str), nil
	case "category":
		str, ok := value.(string)
		if !ok || !domain.ValidCategory(str) {
			return nil, domain.ErrInvalidProjectCategory
		}
		return str, nil
	case "budget":
		num, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("field %q must be a number", key)
		}
		return num, nil
	case "start_date", "end_date":
		return parseTimeField(key, value)
	case "milestones":
		var milestones []domain.Milestone
		if err := reencode(value, &milestones); err != nil {
			return nil, fmt.Errorf("field %q is malformed", key)
		}
		for i := range milestones {
			if milestones[i].Status == "" {
				milestones[i].Status = domain.MilestonePending
			}
			if milestones[i].Status != domain.MilestonePending && milestones[i].Status != domain.MilestoneCompleted {
				return nil, fmt.Errorf("milestone status must be %q or %q", domain.MilestonePending, domain.MilestoneCompleted)
			}
		}
		return milestones, nil
	case "images", "documents":
		var urls []string
		if err := reencode(value, &urls); err != nil {
			return nil, fmt.Errorf("field %q must be a list of strings", key)
		}
		return urls, nil
	default: // title, description, location
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must be a string", key)
		}
		return str, nil
	}
}

func parseTimeField(key string, value any) (time.Time, error) {
	str, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q must be an RFC 3339 timestamp", key)
	}
	ts, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %q must be an RFC 3339 timestamp", key)
	}
	return ts.UTC(), nil
}

// reencode round-trips a decoded JSON value into a typed destination.
func reencode(value, dst any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
