package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/domain"
)

func runRequire(t *testing.T, role string, capability domain.Capability) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", role)

	h := Require(capability)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec.Code
}

func TestRequire_CapabilityMatrix(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		capability domain.Capability
		want       int
	}{
		{"admin manages users", domain.RoleAdmin, domain.CapManageUsers, http.StatusOK},
		{"attendant creates orders", domain.RoleAttendant, domain.CapCreateOrder, http.StatusOK},
		{"attendant reorders queue", domain.RoleAttendant, domain.CapReorderQueue, http.StatusOK},
		{"attendant cannot accept", domain.RoleAttendant, domain.CapAcceptOrder, http.StatusForbidden},
		{"technician accepts", domain.RoleTechnician, domain.CapAcceptOrder, http.StatusOK},
		{"technician cannot create", domain.RoleTechnician, domain.CapCreateOrder, http.StatusForbidden},
		{"technician cannot manage users", domain.RoleTechnician, domain.CapManageUsers, http.StatusForbidden},
		{"helper views orders", domain.RoleHelper, domain.CapViewOrders, http.StatusOK},
		{"helper cannot complete", domain.RoleHelper, domain.CapCompleteOrder, http.StatusForbidden},
		{"unknown role holds nothing", "auditor", domain.CapViewOrders, http.StatusForbidden},
		{"empty role holds nothing", "", domain.CapViewOrders, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runRequire(t, tt.role, tt.capability); got != tt.want {
				t.Fatalf("role %q capability %q: expected %d, got %d", tt.role, tt.capability, tt.want, got)
			}
		})
	}
}
