package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return rec.Code, resp.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("%w: client name is required", domain.ErrValidation), http.StatusUnprocessableEntity},
		{"blocked date", domain.ErrBlockedDate, http.StatusUnprocessableEntity},
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"invalid transition", fmt.Errorf("%w: completed to executing", domain.ErrInvalidTransition), http.StatusConflict},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", domain.ErrUserInactive, http.StatusUnauthorized},
		{"session expired", domain.ErrSessionExpired, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"snapshot store down", fmt.Errorf("%w: write snapshot", domain.ErrSnapshotStore), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := handleError(t, tt.err)
			if code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, code)
			}
		})
	}
}

func TestHTTPErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if msg != "Not Found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHTTPErrorHandler_HidesInternalDetails(t *testing.T) {
	_, msg := handleError(t, errors.New("pq: connection refused at 10.0.0.3"))
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}
