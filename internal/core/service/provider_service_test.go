package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

func newProviderService(t *testing.T) (*ProviderService, *stubUserRepo, *stubProviderRepo) {
	t.Helper()
	tokens, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	users := newStubUserRepo()
	providers := newStubProviderRepo()
	return NewProviderService(users, providers, tokens, zerolog.Nop()), users, providers
}

func providerInput() ports.RegisterProviderInput {
	return ports.RegisterProviderInput{
		Name:        "Bob's Builds",
		Email:       "bob@example.com",
		Password:    "hunter22",
		ServiceType: "construction",
		Experience:  "10 years",
		Location:    "Denver",
		LicenseFile: "/uploads/documents/license.pdf",
	}
}

func TestProviderService_Register(t *testing.T) {
	svc, users, _ := newProviderService(t)
	ctx := context.Background()

	token, user, provider, err := svc.Register(ctx, providerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.Role != domain.RoleServiceProvider {
		t.Fatalf("expected role %q, got %q", domain.RoleServiceProvider, user.Role)
	}
	if provider.UserID != user.ID {
		t.Fatalf("profile not linked to user: %q vs %q", provider.UserID, user.ID)
	}
	if provider.Verified {
		t.Fatal("new providers must start unverified")
	}
	if provider.LicenseFile != "/uploads/documents/license.pdf" {
		t.Fatalf("license file lost: %q", provider.LicenseFile)
	}
	if _, err := users.FindByID(ctx, user.ID); err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
}

func TestProviderService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("taken by a user account", func(t *testing.T) {
		svc, users, _ := newProviderService(t)
		if _, err := users.Create(ctx, &domain.User{Email: "bob@example.com", Role: domain.RoleRegular}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		if _, _, _, err := svc.Register(ctx, providerInput()); !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("taken by a provider profile", func(t *testing.T) {
		svc, _, providers := newProviderService(t)
		if _, err := providers.Create(ctx, &domain.ServiceProvider{Email: "bob@example.com"}); err != nil {
			t.Fatalf("seed provider: %v", err)
		}
		if _, _, _, err := svc.Register(ctx, providerInput()); !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestProviderService_Register_CompensatingDelete(t *testing.T) {
	svc, users, providers := newProviderService(t)
	ctx := context.Background()

	providers.failCreate = errors.New("write concern failure")

	if _, _, _, err := svc.Register(ctx, providerInput()); err == nil {
		t.Fatal("expected registration to fail")
	}

	// The partially created user account must be rolled back so the email
	// is not blocked forever.
	if _, err := users.FindByEmail(ctx, "bob@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected orphaned user to be deleted, got %v", err)
	}
}

func TestProviderService_UpdateProfile(t *testing.T) {
	svc, _, _ := newProviderService(t)
	ctx := context.Background()

	_, user, _, err := svc.Register(ctx, providerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, user.ID, ports.UpdateProviderProfileInput{
		ServiceType: "renovation",
		Location:    "Boulder",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.ServiceType != "renovation" || updated.Location != "Boulder" {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.Name != "Bob's Builds" {
		t.Fatalf("empty input overwrote name: %q", updated.Name)
	}
}

func TestProviderService_AddPortfolio(t *testing.T) {
	svc, _, providers := newProviderService(t)
	ctx := context.Background()

	_, user, provider, err := svc.Register(ctx, providerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.AddPortfolio(ctx, user.ID, ports.PortfolioInput{
		ProjectID:   "project_1",
		Description: "Kitchen remodel",
		Images:      []string{"/uploads/portfolio/kitchen.jpg"},
	})
	if err != nil {
		t.Fatalf("AddPortfolio: %v", err)
	}
	if len(updated.Portfolio) != 1 || updated.Portfolio[0].Description != "Kitchen remodel" {
		t.Fatalf("portfolio not appended: %+v", updated.Portfolio)
	}

	stored, err := providers.FindByID(ctx, provider.ID)
	if err != nil {
		t.Fatalf("find provider: %v", err)
	}
	if len(stored.Portfolio) != 1 {
		t.Fatalf("portfolio not persisted: %+v", stored.Portfolio)
	}
}

func TestProviderService_List_Filters(t *testing.T) {
	svc, _, providers := newProviderService(t)
	ctx := context.Background()

	seed := []*domain.ServiceProvider{
		{Name: "Acme Construction", ServiceType: "construction", Verified: true},
		{Name: "Dream Interiors", ServiceType: "interior-design", Verified: true},
		{Name: "Acme Maintenance", ServiceType: "maintenance", Verified: false},
	}
	for _, p := range seed {
		if _, err := providers.Create(ctx, p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	byType, err := svc.List(ctx, ports.ListProvidersFilter{ServiceType: "construction"})
	if err != nil {
		t.Fatalf("List by type: %v", err)
	}
	if len(byType) != 1 || byType[0].Name != "Acme Construction" {
		t.Fatalf("unexpected type filter result: %+v", byType)
	}

	byQuery, err := svc.List(ctx, ports.ListProvidersFilter{Query: "acme"})
	if err != nil {
		t.Fatalf("List by query: %v", err)
	}
	if len(byQuery) != 2 {
		t.Fatalf("expected 2 name matches, got %d", len(byQuery))
	}

	verified, err := svc.List(ctx, ports.ListProvidersFilter{Verified: true})
	if err != nil {
		t.Fatalf("List verified: %v", err)
	}
	if len(verified) != 2 {
		t.Fatalf("expected 2 verified providers, got %d", len(verified))
	}
}

func TestProviderService_Estimate(t *testing.T) {
	svc, _, _ := newProviderService(t)

	cases := []struct {
		category string
		cost     float64
		timeline string
	}{
		{domain.CategoryConstruction, 25000, "12 weeks"},
		{domain.CategoryInteriorDesign, 8000, "4 weeks"},
		{domain.CategoryRenovation, 15000, "8 weeks"},
		{domain.CategoryMaintenance, 1000, "2 weeks"},
		{"landscaping", 1000, "2 weeks"}, // unknown falls back to maintenance
	}
	for _, tc := range cases {
		got := svc.Estimate(ports.EstimateInput{Category: tc.category, Requirements: "asap"})
		if got.EstimatedCost != tc.cost || got.Timeline != tc.timeline {
			t.Errorf("%s: got cost=%v timeline=%q, want cost=%v timeline=%q",
				tc.category, got.EstimatedCost, got.Timeline, tc.cost, tc.timeline)
		}
	}
}
