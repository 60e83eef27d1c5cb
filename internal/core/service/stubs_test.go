package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

// In-memory fakes for the repository ports, shared by the service tests.

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *user
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("user_%d", r.seq)
	}
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubProviderRepo struct {
	providers  map[string]*domain.ServiceProvider
	seq        int
	failCreate error
}

func newStubProviderRepo() *stubProviderRepo {
	return &stubProviderRepo{providers: make(map[string]*domain.ServiceProvider)}
}

func (r *stubProviderRepo) Create(_ context.Context, p *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	if r.failCreate != nil {
		return nil, r.failCreate
	}
	clone := *p
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("provider_%d", r.seq)
	}
	r.providers[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProviderRepo) FindByEmail(_ context.Context, email string) (*domain.ServiceProvider, error) {
	for _, p := range r.providers {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

func (r *stubProviderRepo) FindByID(_ context.Context, id string) (*domain.ServiceProvider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProviderRepo) FindByUserID(_ context.Context, userID string) (*domain.ServiceProvider, error) {
	for _, p := range r.providers {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

func (r *stubProviderRepo) Update(_ context.Context, p *domain.ServiceProvider) error {
	if _, ok := r.providers[p.ID]; !ok {
		return domain.ErrProviderNotFound
	}
	clone := *p
	r.providers[p.ID] = &clone
	return nil
}

func (r *stubProviderRepo) AddPortfolioEntry(_ context.Context, providerID string, entry domain.PortfolioEntry) error {
	p, ok := r.providers[providerID]
	if !ok {
		return domain.ErrProviderNotFound
	}
	p.Portfolio = append(p.Portfolio, entry)
	return nil
}

func (r *stubProviderRepo) List(_ context.Context, filter ports.ListProvidersFilter) ([]*domain.ServiceProvider, error) {
	var out []*domain.ServiceProvider
	for _, p := range r.providers {
		if filter.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.ServiceType != "" && p.ServiceType != filter.ServiceType {
			continue
		}
		if filter.Verified && !p.Verified {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type stubProjectRepo struct {
	projects map[string]*domain.Project
	seq      int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	clone := *p
	if clone.ID == "" {
		r.seq++
		clone.ID = fmt.Sprintf("project_%d", r.seq)
	}
	r.projects[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id, providerID string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.ServiceProvider != providerID {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) ListByProvider(_ context.Context, providerID string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if p.ServiceProvider == providerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id, providerID string, fields map[string]any) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.ServiceProvider != providerID {
		return nil, domain.ErrProjectNotFound
	}
	for k, v := range fields {
		applyProjectField(p, k, v)
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id, providerID string) error {
	p, ok := r.projects[id]
	if !ok || p.ServiceProvider != providerID {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func applyProjectField(p *domain.Project, key string, value any) {
	switch key {
	case "title":
		p.Title = value.(string)
	case "description":
		p.Description = value.(string)
	case "status":
		p.Status = value.(domain.ProjectStatus)
	case "category":
		p.Category = value.(string)
	case "budget":
		p.Budget = value.(float64)
	case "location":
		p.Location = value.(string)
	case "start_date":
		p.StartDate = value.(time.Time)
	case "end_date":
		ts := value.(time.Time)
		p.EndDate = &ts
	case "milestones":
		p.Milestones = value.([]domain.Milestone)
	case "images":
		p.Images = value.([]string)
	case "documents":
		p.Documents = value.([]string)
	case "updated_at":
		p.UpdatedAt = value.(time.Time)
	}
}
