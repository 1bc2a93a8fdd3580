package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

type stubAuthService struct {
	loginFn       func(ctx context.Context, username, password string) (string, *domain.User, error)
	currentUserFn func(ctx context.Context, username string) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, username string) (*domain.User, error) {
	return s.currentUserFn(ctx, username)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.User, error) {
			if username != "admin" || password != "admin123" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return "signed-token", &domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"admin","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "signed-token" {
		t.Fatalf("unexpected token: %v", resp["access_token"])
	}
	if resp["token_type"] != "bearer" {
		t.Fatalf("unexpected token type: %v", resp["token_type"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "admin" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %v", resp["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must never appear in responses")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"admin","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials passed through, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	body := strings.NewReader(`{"username":"admin"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if !strings.Contains(he.Message.(string), "password") {
		t.Fatalf("error should name the missing field: %v", he.Message)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		currentUserFn: func(_ context.Context, username string) (*domain.User, error) {
			if username != "agent1" {
				t.Fatalf("unexpected username: %s", username)
			}
			return &domain.User{ID: 3, Username: "agent1", Role: domain.RoleAgent}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "agent1")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "agent1" || resp["role"] != "agent" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
