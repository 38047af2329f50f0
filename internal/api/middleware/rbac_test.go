package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/core/domain"
)

func contextWithIdentity(identity *domain.Identity) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, identity)
	}
	return c
}

func TestRequireRoleAllowed(t *testing.T) {
	c := contextWithIdentity(&domain.Identity{UserID: "u1", Role: domain.RoleFarmer})

	called := false
	handler := RequireRole(domain.RoleFarmer, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	c := contextWithIdentity(&domain.Identity{UserID: "u1", Role: domain.RoleCustomer})

	handler := RequireFarmer()(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if code := appErrCode(t, handler(c)); code != domain.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}
}

func TestRequireRoleNoIdentity(t *testing.T) {
	c := contextWithIdentity(nil)

	handler := RequireAdmin()(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if code := appErrCode(t, handler(c)); code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}
}

func TestCheckOwnership(t *testing.T) {
	owner := &domain.Identity{UserID: "u1", Role: domain.RoleFarmer}
	stranger := &domain.Identity{UserID: "u2", Role: domain.RoleFarmer}
	admin := &domain.Identity{UserID: "u3", Role: domain.RoleAdmin}

	if err := CheckOwnership(owner, "u1"); err != nil {
		t.Fatalf("owner should have access: %v", err)
	}
	if err := CheckOwnership(admin, "u1"); err != nil {
		t.Fatalf("admin should have access: %v", err)
	}
	if code := appErrCode(t, CheckOwnership(stranger, "u1")); code != domain.CodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}
	if code := appErrCode(t, CheckOwnership(nil, "u1")); code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}
}
