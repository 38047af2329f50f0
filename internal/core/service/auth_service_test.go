package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
	"github.com/farm2door/marketplace/internal/pkg/password"
	"github.com/farm2door/marketplace/internal/pkg/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.NewConflict("Email already registered")
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "user-" + string(rune('0'+r.nextID))
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.NewNotFound("User")
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.NewNotFound("User")
}

type stubTokenStore struct {
	tokens map[string]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]string)}
}

func (s *stubTokenStore) Save(_ context.Context, userID, tokenString string, _ time.Duration) error {
	s.tokens[userID] = tokenString
	return nil
}

func (s *stubTokenStore) Get(_ context.Context, userID string) (string, error) {
	return s.tokens[userID], nil
}

func (s *stubTokenStore) Delete(_ context.Context, userID string) error {
	delete(s.tokens, userID)
	return nil
}

func newTestAuthService() (*AuthService, *stubUserRepo, *stubTokenStore, *token.Service) {
	repo := newStubUserRepo()
	store := newStubTokenStore()
	tokens := token.New(token.Config{
		AccessSecret:  "access-secret",
		AccessTTL:     time.Hour,
		RefreshSecret: "refresh-secret",
		RefreshTTL:    24 * time.Hour,
	})
	svc := NewAuthService(repo, tokens, store, zerolog.Nop())
	return svc, repo, store, tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, store, tokens := newTestAuthService()

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.PasswordHash == "Sup3r$ecret" {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify("Sup3r$ecret", result.User.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", result.Tokens)
	}

	identity, err := tokens.VerifyAccessToken(result.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if identity.Role != domain.RoleFarmer || identity.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if store.tokens[result.User.ID] != result.Tokens.RefreshToken {
		t.Fatalf("refresh token not stored")
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "weak",
		Role:     domain.RoleCustomer,
	})
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if len(ae.Fields) == 0 {
		t.Fatalf("expected password field errors")
	}
	for _, fe := range ae.Fields {
		if fe.Field != "password" {
			t.Fatalf("unexpected field in error: %s", fe.Field)
		}
	}
}

func TestAuthService_Register_AdminRejected(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleAdmin,
	})
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR for admin self-registration, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	input := ports.RegisterInput{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleCustomer,
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Dave",
		Email:    "dave@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleCustomer,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "dave@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Tokens.AccessToken == "" {
		t.Fatalf("expected access token")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Frank",
		Email:    "frank@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleCustomer,
	})

	// Wrong password and unknown account fail identically.
	for _, c := range []struct{ email, pass string }{
		{"frank@example.com", "WrongPass1!"},
		{"ghost@example.com", "Sup3r$ecret"},
	} {
		_, err := svc.Login(context.Background(), c.email, c.pass)
		ae, ok := domain.AsAppError(err)
		if !ok || ae.Code != domain.CodeUnauthorized {
			t.Fatalf("expected UNAUTHORIZED for %s, got %v", c.email, err)
		}
	}
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	svc, _, store, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.Tokens.AccessToken == "" {
		t.Fatalf("expected new access token")
	}
	if store.tokens[reg.User.ID] != refreshed.Tokens.RefreshToken {
		t.Fatalf("store not rotated to the new refresh token")
	}
}

func TestAuthService_Refresh_RevokedToken(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Heidi",
		Email:    "heidi@example.com",
		Password: "Sup3r$ecret",
		Role:     domain.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), reg.User.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN after logout, got %v", err)
	}
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	svc, _, _, _ := newTestAuthService()

	_, err := svc.Refresh(context.Background(), "not-a-token")
	ae, ok := domain.AsAppError(err)
	if !ok || ae.Code != domain.CodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN, got %v", err)
	}
}
