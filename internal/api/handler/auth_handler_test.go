package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

type stubAuthService struct {
	loginResult *ports.LoginResult
	loginErr    error
	loggedOut   []string
	renewErr    error
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = append(s.loggedOut, sessionID)
	return nil
}

func (s *stubAuthService) Renew(_ context.Context, sessionID string) (*ports.LoginResult, error) {
	if s.renewErr != nil {
		return nil, s.renewErr
	}
	return s.loginResult, nil
}

func newAuthContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin_Success(t *testing.T) {
	expires := time.Now().Add(8 * time.Hour).Truncate(time.Second)
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		Token:   "signed-token",
		Session: &domain.Session{ID: "s1", UserID: "u1", ExpiresAt: expires},
		User:    &domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleTechnician},
	}}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
	if resp.User == nil || resp.User.ID != "u1" {
		t.Fatalf("user missing from response: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Fatalf("response leaks password hash: %s", rec.Body.String())
	}
}

func TestLogin_InvalidCredentialsPropagated(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_RejectsMissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthContext(http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogout_DiscardsSession(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(http.MethodPost, "/auth/logout", "")
	c.Set("session_id", "s1")
	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "s1" {
		t.Fatalf("session not discarded: %v", svc.loggedOut)
	}
}

func TestLogout_WithoutClaimsRejected(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(http.MethodPost, "/auth/logout", "")
	err := h.Logout(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRenew_ReturnsFreshToken(t *testing.T) {
	expires := time.Now().Add(8 * time.Hour)
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		Token:   "renewed-token",
		Session: &domain.Session{ID: "s1", UserID: "u1", ExpiresAt: expires},
		User:    &domain.User{ID: "u1"},
	}}
	h := NewAuthHandler(svc)

	c, rec := newAuthContext(http.MethodPost, "/auth/renew", "")
	c.Set("session_id", "s1")
	if err := h.Renew(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "renewed-token" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
}

func TestRenew_ExpiredSessionPropagated(t *testing.T) {
	svc := &stubAuthService{renewErr: domain.ErrSessionExpired}
	h := NewAuthHandler(svc)

	c, _ := newAuthContext(http.MethodPost, "/auth/renew", "")
	c.Set("session_id", "s1")
	err := h.Renew(c)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
