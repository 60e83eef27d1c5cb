package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildscape/marketplace-api/internal/api/metrics"
	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
	"github.com/buildscape/marketplace-api/internal/pkg/upload"
)

// ProviderHandler handles HTTP requests for service-provider operations.
type ProviderHandler struct {
	service ports.ProviderService
	uploads *upload.Store
}

func NewProviderHandler(service ports.ProviderService, uploads *upload.Store) *ProviderHandler {
	return &ProviderHandler{service: service, uploads: uploads}
}

type providerRegisterResponse struct {
	Message  string                  `json:"message"`
	Token    string                  `json:"token"`
	User     domain.PublicUser       `json:"user"`
	Provider *domain.ServiceProvider `json:"provider"`
	Files    []upload.FileMeta       `json:"files,omitempty"`
}

type updateProviderRequest struct {
	Name        string `json:"name"`
	ServiceType string `json:"service_type"`
	Experience  string `json:"experience"`
	Location    string `json:"location"`
}

type portfolioRequest struct {
	ProjectID   string   `json:"project_id" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type estimateRequest struct {
	Category     string `json:"category" validate:"required"`
	Requirements string `json:"requirements"`
}

// Register creates a service provider account from a multipart form. License
// documents ride in the "documents" field; the first stored file becomes the
// profile's license reference.
//
// @Summary      Register a service provider
// @Tags         services
// @Accept       mpfd
// @Produce      json
// @Param        name      formData  string  true   "Display name"
// @Param        email     formData  string  true   "Email address"
// @Param        password  formData  string  true   "Password"
// @Success      201       {object}  providerRegisterResponse
// @Failure      400       {object}  map[string]string
// @Router       /api/services/register [post]
func (h *ProviderHandler) Register(c echo.Context) error {
	input := ports.RegisterProviderInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Password:    c.FormValue("password"),
		ServiceType: c.FormValue("service_type"),
		Experience:  c.FormValue("experience"),
		Location:    c.FormValue("location"),
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	var files []upload.FileMeta
	if form, err := c.MultipartForm(); err == nil && form != nil && len(form.File) > 0 {
		files, err = h.uploads.Save(form)
		if err != nil {
			var ve *upload.ValidationError
			if errors.As(err, &ve) {
				return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
			}
			return err
		}
		input.LicenseFile = files[0].Path
	}

	token, user, provider, err := h.service.Register(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role).Inc()

	return c.JSON(http.StatusCreated, providerRegisterResponse{
		Message:  "Service provider registered successfully",
		Token:    token,
		User:     user.Public(),
		Provider: provider,
		Files:    files,
	})
}

// List returns the provider directory.
func (h *ProviderHandler) List(c echo.Context) error {
	providers, err := h.service.List(c.Request().Context(), ports.ListProvidersFilter{
		ServiceType: c.QueryParam("service_type"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"providers": providers})
}

// Search filters the directory by name and service type.
func (h *ProviderHandler) Search(c echo.Context) error {
	metrics.ProviderSearchesTotal.Inc()

	providers, err := h.service.List(c.Request().Context(), ports.ListProvidersFilter{
		Query:       c.QueryParam("query"),
		ServiceType: c.QueryParam("service_type"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"providers": providers})
}

// Get returns a single provider profile.
func (h *ProviderHandler) Get(c echo.Context) error {
	provider, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Service provider not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"provider": provider})
}

// UpdateProfile applies allow-listed fields to the caller's provider profile.
// Gated by RequireServiceProvider.
func (h *ProviderHandler) UpdateProfile(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProviderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	provider, err := h.service.UpdateProfile(c.Request().Context(), identity.ID, ports.UpdateProviderProfileInput{
		Name:        req.Name,
		ServiceType: req.ServiceType,
		Experience:  req.Experience,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":  "Service provider profile updated successfully",
		"provider": provider,
	})
}

// AddPortfolio appends a portfolio entry. Gated by RequireVerifiedProvider.
func (h *ProviderHandler) AddPortfolio(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req portfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	provider, err := h.service.AddPortfolio(c.Request().Context(), identity.ID, ports.PortfolioInput{
		ProjectID:   req.ProjectID,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message":   "Project added to portfolio successfully",
		"portfolio": provider.Portfolio,
	})
}

// Estimate returns a rough cost and timeline projection.
func (h *ProviderHandler) Estimate(c echo.Context) error {
	var req estimateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	estimate := h.service.Estimate(ports.EstimateInput{
		Category:     req.Category,
		Requirements: req.Requirements,
	})
	return c.JSON(http.StatusOK, map[string]any{"estimate": estimate})
}
