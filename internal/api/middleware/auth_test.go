package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/buildscape/marketplace-api/internal/core/domain"
	"github.com/buildscape/marketplace-api/internal/core/service"
)

func invokeAuth(t *testing.T, authHeader string) (echo.Context, error, bool) {
	t.Helper()

	tokens, err := service.NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	next := func(c echo.Context) error {
		nextCalled = true
		return nil
	}

	return c, Auth(tokens)(next)(c), nextCalled
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
	if he.Message != message {
		t.Fatalf("expected message %q, got %v", message, he.Message)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	tokens, err := service.NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, err := tokens.Issue("user_1", domain.RoleServiceProvider)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := Auth(tokens)(func(c echo.Context) error {
		nextCalled = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatal("next handler not reached")
	}
	if got := c.Get(CtxUserID); got != "user_1" {
		t.Fatalf("user_id not set: %v", got)
	}
	if got := c.Get(CtxRole); got != domain.RoleServiceProvider {
		t.Fatalf("role not set: %v", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err, nextCalled := invokeAuth(t, "")
	assertHTTPError(t, err, http.StatusUnauthorized, "missing or malformed authorization header")
	if nextCalled {
		t.Fatal("next handler reached without credentials")
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer"} {
		_, err, nextCalled := invokeAuth(t, header)
		assertHTTPError(t, err, http.StatusUnauthorized, "missing or malformed authorization header")
		if nextCalled {
			t.Fatalf("%q: next handler reached", header)
		}
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	_, err, nextCalled := invokeAuth(t, "Bearer not-a-token")
	assertHTTPError(t, err, http.StatusUnauthorized, "invalid token")
	if nextCalled {
		t.Fatal("next handler reached with a garbage token")
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user_1",
		"role": domain.RoleRegular,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	token, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, verr, nextCalled := invokeAuth(t, "Bearer "+token)
	assertHTTPError(t, verr, http.StatusUnauthorized, "token has expired")
	if nextCalled {
		t.Fatal("next handler reached with an expired token")
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	other, err := service.NewTokenService("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, err := other.Issue("user_1", domain.RoleRegular)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, verr, nextCalled := invokeAuth(t, "Bearer "+token)
	assertHTTPError(t, verr, http.StatusUnauthorized, "invalid token")
	if nextCalled {
		t.Fatal("next handler reached with a forged token")
	}
}
