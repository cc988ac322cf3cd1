package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

type stubSessions struct {
	sessions map[string]*domain.Session
}

func (s *stubSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret, sid string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sid":     sid,
		"user_id": "u1",
		"role":    domain.RoleTechnician,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, authHeader string, sessions *stubSessions) (int, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var passed bool
	h := Auth(testSecret, sessions)(func(c echo.Context) error {
		passed = true
		return c.NoContent(http.StatusOK)
	})

	err := h(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code, c
		}
		t.Fatalf("unexpected error type: %v", err)
	}
	if !passed {
		t.Fatalf("handler not reached and no error returned")
	}
	return rec.Code, c
}

func TestAuth_ValidTokenWithLiveSession(t *testing.T) {
	sessions := &stubSessions{sessions: map[string]*domain.Session{
		"s1": {ID: "s1", UserID: "u1", Role: domain.RoleTechnician},
	}}
	token := signTestToken(t, testSecret, "s1")

	code, c := runAuth(t, "Bearer "+token, sessions)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got, _ := c.Get("user_id").(string); got != "u1" {
		t.Fatalf("user_id claim not injected: %q", got)
	}
	if got, _ := c.Get("role").(string); got != domain.RoleTechnician {
		t.Fatalf("role claim not injected: %q", got)
	}
	if got, _ := c.Get("session_id").(string); got != "s1" {
		t.Fatalf("session_id not injected: %q", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	code, _ := runAuth(t, "", &stubSessions{sessions: map[string]*domain.Session{}})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	code, _ := runAuth(t, "Token abc", &stubSessions{sessions: map[string]*domain.Session{}})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_BadSignature(t *testing.T) {
	token := signTestToken(t, "wrong-secret", "s1")
	code, _ := runAuth(t, "Bearer "+token, &stubSessions{sessions: map[string]*domain.Session{}})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuth_DeadSessionRejected(t *testing.T) {
	// Token is cryptographically valid but the session was logged out.
	token := signTestToken(t, testSecret, "gone")
	code, _ := runAuth(t, "Bearer "+token, &stubSessions{sessions: map[string]*domain.Session{}})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
