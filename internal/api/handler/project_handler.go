package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildscape/marketplace-api/internal/api/metrics"
	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for ownership-scoped project CRUD.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Client      string  `json:"client" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Budget      float64 `json:"budget" validate:"omitempty,gte=0"`
	Location    string  `json:"location"`
}

// Create persists a new project owned by the caller's provider profile.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), identity.ID, ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Client:      req.Client,
		Category:    req.Category,
		Budget:      req.Budget,
		Location:    req.Location,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			return echo.NewHTTPError(http.StatusForbidden, "Only service providers can create projects")
		}
		if errors.Is(err, domain.ErrInvalidProjectCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(project.Category).Inc()

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Project created successfully",
		"project": project,
	})
}

// List returns the caller's projects, newest first.
func (h *ProjectHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	projects, err := h.service.List(c.Request().Context(), identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrProviderNotFound) {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"projects": projects})
}

// Get returns one owned project. A project owned by someone else is reported
// as not found, never as forbidden.
func (h *ProjectHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), identity.ID, c.Param("id"))
	if err != nil {
		return mapProjectError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"project": project})
}

// Update applies allow-listed fields to an owned project.
func (h *ProjectHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fields := map[string]any{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Update(c.Request().Context(), identity.ID, c.Param("id"), fields)
	if err != nil {
		var unknown *domain.UnknownFieldError
		if errors.As(err, &unknown) {
			return echo.NewHTTPError(http.StatusBadRequest, unknown.Error())
		}
		if errors.Is(err, domain.ErrInvalidProjectStatus) || errors.Is(err, domain.ErrInvalidProjectCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return mapProjectError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Project updated successfully",
		"project": project,
	})
}

// Delete removes an owned project.
func (h *ProjectHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity.ID, c.Param("id")); err != nil {
		return mapProjectError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// mapProjectError translates the shared failure modes of scoped project
// operations.
func mapProjectError(err error) error {
	switch {
	case errors.Is(err, domain.ErrProviderNotFound):
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	case errors.Is(err, domain.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	default:
		return err
	}
}
