package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

// ProviderService implements provider registration and the public directory.
type ProviderService struct {
	users     ports.UserRepository
	providers ports.ProviderRepository
	tokens    ports.TokenService
	logger    zerolog.Logger
}

func NewProviderService(users ports.UserRepository, providers ports.ProviderRepository, tokens ports.TokenService, logger zerolog.Logger) *ProviderService {
	return &ProviderService{users: users, providers: providers, tokens: tokens, logger: logger}
}

// Register creates the base user account and the linked provider profile,
// then issues a token for the new user. If the profile insert fails after the
// user insert succeeded, the user is deleted again so no orphaned account
// survives the partial write.
func (s *ProviderService) Register(ctx context.Context, input ports.RegisterProviderInput) (string, *domain.User, *domain.ServiceProvider, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return "", nil, nil, domain.ErrInvalidCredentials
	}

	// Duplicate email is checked against both collections independently;
	// first match wins. The unique indexes on both email fields close the
	// race this pre-check leaves open.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return "", nil, nil, domain.ErrEmailTaken
	}
	if _, err := s.providers.FindByEmail(ctx, input.Email); err == nil {
		return "", nil, nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleServiceProvider,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", nil, nil, err
	}

	provider, err := s.providers.Create(ctx, &domain.ServiceProvider{
		Name:        input.Name,
		Email:       input.Email,
		UserID:      user.ID,
		ServiceType: input.ServiceType,
		Experience:  input.Experience,
		Location:    input.Location,
		LicenseFile: input.LicenseFile,
		Verified:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		// Compensating delete, best effort. A leftover user without a
		// profile would block the email forever.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("user_id", user.ID).Msg("compensating user delete failed")
		}
		return "", nil, nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, nil, err
	}

	s.logger.Info().Str("provider_id", provider.ID).Str("email", provider.Email).Msg("service provider registered")
	return token, user, provider, nil
}

// List returns directory entries matching the filter.
func (s *ProviderService) List(ctx context.Context, filter ports.ListProvidersFilter) ([]*domain.ServiceProvider, error) {
	return s.providers.List(ctx, filter)
}

// Get returns a single provider profile by id.
func (s *ProviderService) Get(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	return s.providers.FindByID(ctx, id)
}

// UpdateProfile applies the non-empty fields of input to the caller's profile.
func (s *ProviderService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProviderProfileInput) (*domain.ServiceProvider, error) {
	provider, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		provider.Name = input.Name
	}
	if input.ServiceType != "" {
		provider.ServiceType = input.ServiceType
	}
	if input.Experience != "" {
		provider.Experience = input.Experience
	}
	if input.Location != "" {
		provider.Location = input.Location
	}
	provider.UpdatedAt = time.Now().UTC()

	if err := s.providers.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// AddPortfolio appends a portfolio entry to the caller's profile. The
// verified-provider gate has already run by the time this executes.
func (s *ProviderService) AddPortfolio(ctx context.Context, userID string, input ports.PortfolioInput) (*domain.ServiceProvider, error) {
	provider, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.PortfolioEntry{
		ProjectID:   input.ProjectID,
		Description: input.Description,
		Images:      input.Images,
		AddedAt:     time.Now().UTC(),
	}
	if err := s.providers.AddPortfolioEntry(ctx, provider.ID, entry); err != nil {
		return nil, err
	}

	provider.Portfolio = append(provider.Portfolio, entry)
	return provider, nil
}

// estimateBase maps a category to a base cost and a typical timeline.
var estimateBase = map[string]struct {
	cost     float64
	timeline string
}{
	domain.CategoryConstruction:   {25000, "12 weeks"},
	domain.CategoryInteriorDesign: {8000, "4 weeks"},
	domain.CategoryRenovation:     {15000, "8 weeks"},
	domain.CategoryMaintenance:    {1000, "2 weeks"},
}

// Estimate returns a rough, non-binding cost and timeline projection for a
// category. Unknown categories fall back to the maintenance baseline.
func (s *ProviderService) Estimate(input ports.EstimateInput) ports.Estimate {
	base, ok := estimateBase[input.Category]
	if !ok {
		base = estimateBase[domain.CategoryMaintenance]
	}
	return ports.Estimate{
		Category:      input.Category,
		Requirements:  input.Requirements,
		EstimatedCost: base.cost,
		Timeline:      base.timeline,
	}
}
