package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/buildscape/marketplace-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "token has expired"},
		{"invalid token", domain.ErrTokenInvalid, http.StatusUnauthorized, "invalid token"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"duplicate email", domain.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"bad tier", domain.ErrInvalidMembershipTier, http.StatusBadRequest, "invalid membership tier"},
		{"bad status", domain.ErrInvalidProjectStatus, http.StatusBadRequest, "invalid project status"},
		{"bad category", domain.ErrInvalidProjectCategory, http.StatusBadRequest, "invalid project category"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"provider not found", domain.ErrProviderNotFound, http.StatusNotFound, "Service provider not found"},
		{"project not found", domain.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
		{"unverified provider", domain.ErrProviderNotVerified, http.StatusForbidden, "access denied: provider not verified"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, code)
			}
			if resp.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, resp.Message)
			}
			if resp.Error != "" {
				t.Fatalf("non-internal error leaked detail: %q", resp.Error)
			}
		})
	}
}

func TestErrorHandler_UnknownField(t *testing.T) {
	code, resp := renderError(t, &domain.UnknownFieldError{Field: "verified"})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Message != `unknown field "verified"` {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, resp := renderError(t, echo.NewHTTPError(http.StatusForbidden, "Access denied"))
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if resp.Message != "Access denied" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_Internal(t *testing.T) {
	cause := errors.New("connection refused: mongodb:27017")

	code, resp := renderError(t, cause)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	// The raw cause is passed through verbatim.
	if resp.Error != cause.Error() {
		t.Fatalf("expected raw cause %q, got %q", cause.Error(), resp.Error)
	}
}

func TestErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.JSON(http.StatusOK, map[string]string{"message": "already sent"}); err != nil {
		t.Fatalf("commit response: %v", err)
	}

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)
	if rec.Code != http.StatusOK {
		t.Fatalf("committed response overwritten: %d", rec.Code)
	}
}
