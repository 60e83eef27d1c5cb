package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/buildscape/marketplace-api/internal/api/middleware"
	"github.com/buildscape/marketplace-api/internal/core/domain"
)

// Shared test plumbing for the handler suites.

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// jsonContext builds an echo context carrying a JSON body.
func jsonContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return newEcho().NewContext(req, rec), rec
}

// multipartContext builds an echo context carrying a multipart form with the
// given string fields.
func multipartContext(t *testing.T, target string, fields map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return newEcho().NewContext(req, rec), rec
}

// asProvider injects the identity the Auth middleware would set for a
// service provider.
func asProvider(c echo.Context, userID string) {
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRole, domain.RoleServiceProvider)
}

func asRegular(c echo.Context, userID string) {
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRole, domain.RoleRegular)
}

func wantHTTPError(t *testing.T, err error, code int, messageContains string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
	if messageContains != "" {
		msg, _ := he.Message.(string)
		if !strings.Contains(msg, messageContains) {
			t.Fatalf("expected message containing %q, got %q", messageContains, msg)
		}
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}
