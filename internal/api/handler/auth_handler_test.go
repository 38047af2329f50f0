package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
	"github.com/farm2door/marketplace/internal/pkg/token"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*ports.AuthResult, error)
	logoutFn   func(ctx context.Context, userID string) error
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) Logout(ctx context.Context, userID string) error {
	return s.logoutFn(ctx, userID)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			if input.Name != "Alice" || input.Role != domain.RoleCustomer {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthResult{
				User:   &domain.User{ID: "u1", Name: input.Name, Email: input.Email, Role: input.Role},
				Tokens: token.Pair{AccessToken: "access123", RefreshToken: "refresh123"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"Str0ng!pass","role":"customer"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	data, _ := resp["data"].(map[string]any)
	if data["access_token"] != "access123" || data["refresh_token"] != "refresh123" {
		t.Fatalf("unexpected tokens: %+v", data)
	}
	user, _ := data["user"].(map[string]any)
	if user["id"] != "u1" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"weak","role":"customer"}`)

	err := h.Register(c)
	appErr, ok := domain.AsAppError(err)
	if !ok || appErr.Code != domain.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	found := false
	for _, fe := range appErr.Fields {
		if fe.Field == "password" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a password field error, got %+v", appErr.Fields)
	}
}

func TestAuthHandler_Register_CollectsAllViolations(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"not-an-email","password":"weak","role":"admin"}`)

	err := h.Register(c)
	appErr, ok := domain.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if len(appErr.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %+v", len(appErr.Fields), appErr.Fields)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register", "not-json")

	err := h.Register(c)
	appErr, ok := domain.AsAppError(err)
	if !ok || appErr.Code != domain.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "Str0ng!pass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{
				User:   &domain.User{ID: "u1", Email: email, Role: domain.RoleCustomer},
				Tokens: token.Pair{AccessToken: "access123", RefreshToken: "refresh123"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"Str0ng!pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	data, _ := resp["data"].(map[string]any)
	if data["access_token"] != "access123" {
		t.Fatalf("expected access token, got %+v", data)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.NewUnauthorized("Invalid email or password")
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"bad-password"}`)

	err := h.Login(c)
	appErr, ok := domain.AsAppError(err)
	if !ok || appErr.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuthHandler_Refresh_Rotates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
			if refreshToken != "old-refresh" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return &ports.AuthResult{
				User:   &domain.User{ID: "u1"},
				Tokens: token.Pair{AccessToken: "new-access", RefreshToken: "new-refresh"},
			}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/refresh",
		`{"refresh_token":"old-refresh"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data, _ := resp["data"].(map[string]any)
	if data["access_token"] != "new-access" || data["refresh_token"] != "new-refresh" {
		t.Fatalf("unexpected pair: %+v", data)
	}
	if _, present := data["user"]; present {
		t.Fatalf("refresh response should not include the user: %+v", data)
	}
}

func TestAuthHandler_Logout_RequiresIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		logoutFn: func(ctx context.Context, userID string) error {
			t.Fatal("service should not be called")
			return nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/logout", "")

	err := h.Logout(c)
	appErr, ok := domain.AsAppError(err)
	if !ok || appErr.Code != domain.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleCustomer}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set("identity", &domain.Identity{UserID: "u1", Role: domain.RoleCustomer})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data, _ := resp["data"].(map[string]any)
	if data["name"] != "Alice" {
		t.Fatalf("unexpected profile: %+v", data)
	}
}
