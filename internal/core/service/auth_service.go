package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
	"github.com/farm2door/marketplace/internal/pkg/password"
	"github.com/farm2door/marketplace/internal/pkg/token"
)

// AuthService implements registration, login and refresh-token rotation.
type AuthService struct {
	users  ports.UserRepository
	tokens *token.Service
	store  ports.RefreshTokenStore
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *token.Service, store ports.RefreshTokenStore, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, store: store, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	// Only customers and farmers self-register; admins are provisioned out of band.
	if input.Role != domain.RoleCustomer && input.Role != domain.RoleFarmer {
		return nil, domain.NewValidationError(domain.FieldError{
			Field:   "role",
			Message: "Role must be customer or farmer",
		})
	}

	if feedback := password.Feedback(input.Password); len(feedback) > 0 {
		fields := make([]domain.FieldError, 0, len(feedback))
		for _, msg := range feedback {
			fields = append(fields, domain.FieldError{Field: "password", Message: msg})
		}
		return nil, domain.NewValidationError(fields...)
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Phone:        input.Phone,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return s.startSession(ctx, created)
}

func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := domain.AsAppError(err); ok {
			// Do not reveal whether the account exists.
			return nil, domain.NewUnauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return nil, domain.NewUnauthorized("Invalid email or password")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return s.startSession(ctx, user)
}

// Refresh verifies the presented refresh token, checks it against the stored
// token for the user (rotation: only the most recently issued refresh token
// is valid), and mints a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	ri, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.Get(ctx, ri.UserID)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != refreshToken {
		return nil, domain.NewInvalidToken("Refresh token has been revoked")
	}

	user, err := s.users.FindByID(ctx, ri.UserID)
	if err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// startSession issues a token pair and stores the refresh token, replacing
// any previously stored one.
func (s *AuthService) startSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	pair, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, user.ID, pair.RefreshToken, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: user, Tokens: pair}, nil
}
