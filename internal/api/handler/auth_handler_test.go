package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kanbanhq/taskboard/internal/core/domain"
	"github.com/kanbanhq/taskboard/internal/core/ports"
)

type stubAuthService struct {
	signupErr error
	loginErr  error
	result    *ports.AuthResult
}

func (s *stubAuthService) Signup(_ context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	if s.result != nil {
		return s.result, nil
	}
	return &ports.AuthResult{
		Token: "token-123",
		User:  &domain.User{ID: "u1", Email: input.Email, Name: input.Name, CreatedAt: time.Now()},
	}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*ports.AuthResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &ports.AuthResult{
		Token: "token-123",
		User:  &domain.User{ID: "u1", Email: email},
	}, nil
}

func (s *stubAuthService) Me(_ context.Context, userID string) (*domain.User, error) {
	return &domain.User{ID: userID, Email: "a@x.com", Name: "Alice"}, nil
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","name":"Alice","password":"pw1234"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string       `json:"access_token"`
		TokenType   string       `json:"token_type"`
		User        *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "token-123" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token envelope: %+v", resp)
	}
	if resp.User == nil || resp.User.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Alice","password":"pw1234"}`},
		{"bad email", `{"email":"not-an-email","name":"Alice","password":"pw1234"}`},
		{"short password", `{"email":"a@x.com","name":"Alice","password":"pw"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/auth/signup", tc.body)
			if err := h.Signup(c); err != nil {
				t.Fatalf("Signup returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signupErr: domain.ErrUserExists})
	c, rec := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","name":"Alice","password":"pw1234"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"pw1234"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})
	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"wrong1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "u1")

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthHandler_Me_WithoutClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")

	err := h.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
