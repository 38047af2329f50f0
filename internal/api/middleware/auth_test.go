package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/pkg/token"
)

func testVerifier() *token.Service {
	return token.New(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "farm2door-test",
	})
}

func requestWithAuth(t *testing.T, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func appErrCode(t *testing.T, err error) domain.ErrorCode {
	t.Helper()
	appErr, ok := domain.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestAuthValidToken(t *testing.T) {
	svc := testVerifier()
	signed, err := svc.IssueAccessToken("user-1", "alice@example.com", domain.RoleFarmer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := requestWithAuth(t, "Bearer "+signed)

	called := false
	handler := Auth(svc)(func(c echo.Context) error {
		called = true
		identity := IdentityFrom(c)
		if identity == nil {
			t.Fatal("identity not set")
		}
		if identity.UserID != "user-1" || identity.Email != "alice@example.com" || identity.Role != domain.RoleFarmer {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	c, _ := requestWithAuth(t, "")

	handler := Auth(testVerifier())(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	if code := appErrCode(t, err); code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %s", code)
	}
	if err.Error() != "[UNAUTHORIZED] Missing authorization header" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAuthInvalidHeaderFormat(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer ", "Bearer a b"} {
		c, _ := requestWithAuth(t, header)

		handler := Auth(testVerifier())(func(c echo.Context) error {
			t.Fatalf("should not reach next for header %q", header)
			return nil
		})

		err := handler(c)
		if code := appErrCode(t, err); code != domain.CodeUnauthorized {
			t.Fatalf("header %q: expected UNAUTHORIZED, got %s", header, code)
		}
		if err.Error() != "[UNAUTHORIZED] Invalid authorization header format" {
			t.Fatalf("header %q: unexpected message: %v", header, err)
		}
	}
}

func TestAuthInvalidToken(t *testing.T) {
	c, _ := requestWithAuth(t, "Bearer not-a-token")

	handler := Auth(testVerifier())(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	if code := appErrCode(t, err); code != domain.CodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN, got %s", code)
	}
}

func TestAuthWrongSecret(t *testing.T) {
	signed, err := testVerifier().IssueAccessToken("user-1", "alice@example.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	other := token.New(token.Config{AccessSecret: "different", RefreshSecret: "refresh-secret"})

	c, _ := requestWithAuth(t, "Bearer "+signed)
	handler := Auth(other)(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	if code := appErrCode(t, handler(c)); code != domain.CodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN, got %s", code)
	}
}

func TestOptionalAuthAnonymous(t *testing.T) {
	c, rec := requestWithAuth(t, "")

	handler := OptionalAuth(testVerifier())(func(c echo.Context) error {
		if IdentityFrom(c) != nil {
			t.Fatal("expected nil identity for anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuthWithValidToken(t *testing.T) {
	svc := testVerifier()
	signed, err := svc.IssueAccessToken("user-7", "bob@example.com", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := requestWithAuth(t, "Bearer "+signed)
	handler := OptionalAuth(svc)(func(c echo.Context) error {
		identity := IdentityFrom(c)
		if identity == nil || identity.UserID != "user-7" {
			t.Fatalf("expected identity user-7, got %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	c, rec := requestWithAuth(t, "Bearer garbage")

	handler := OptionalAuth(testVerifier())(func(c echo.Context) error {
		if IdentityFrom(c) != nil {
			t.Fatal("bad token must not produce an identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
