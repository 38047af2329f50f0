package ports

import (
	"context"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/pkg/token"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

// AuthResult is returned by operations that establish a session.
type AuthResult struct {
	User   *domain.User
	Tokens token.Pair
}

// AuthService defines registration, login and token renewal.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh verifies a refresh token, rotates it, and returns a new pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	// Logout revokes the caller's stored refresh token.
	Logout(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
