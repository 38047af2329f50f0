// Package token issues and verifies the signed, time-bound tokens used for
// API authentication. Access and refresh tokens are signed with distinct
// secrets so the two classes are never interchangeable: a leaked refresh
// token cannot be replayed as an access token, and vice versa.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/farm2door/marketplace/internal/core/domain"
)

const (
	defaultAccessTTL  = 24 * time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Config carries the process-wide signing secrets and lifetimes. It is passed
// explicitly to New; the service never reads ambient globals.
type Config struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
	Issuer        string
}

// Pair bundles a freshly minted access and refresh token.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service mints and verifies HS256-signed tokens.
type Service struct {
	cfg Config
}

func New(cfg Config) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &Service{cfg: cfg}
}

// RefreshTTL exposes the configured refresh-token lifetime so callers can
// align stored-token expiry with token expiry.
func (s *Service) RefreshTTL() time.Duration {
	return s.cfg.RefreshTTL
}

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	jwt.RegisteredClaims
}

// IssueAccessToken returns a signed access token embedding the user's id,
// email and role, expiring AccessTTL from now.
func (s *Service) IssueAccessToken(userID, email, role string) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.AccessSecret))
}

// IssueRefreshToken returns a signed refresh token embedding only the user's
// id, expiring RefreshTTL from now.
func (s *Service) IssueRefreshToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.RefreshSecret))
}

// IssuePair mints an access and refresh token for the same user. The two
// calls share no state.
func (s *Service) IssuePair(userID, email, role string) (Pair, error) {
	access, err := s.IssueAccessToken(userID, email, role)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.IssueRefreshToken(userID)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken validates tokenString against the access secret and
// returns the embedded identity. Expired tokens fail with TOKEN_EXPIRED; any
// other verification failure (bad signature, malformed structure, wrong
// secret) fails with INVALID_TOKEN.
func (s *Service) VerifyAccessToken(tokenString string) (*domain.Identity, error) {
	claims := &accessClaims{}
	if err := s.parse(tokenString, claims, s.cfg.AccessSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewTokenExpired("Access token has expired")
		}
		return nil, domain.NewInvalidToken("Invalid access token")
	}
	return &domain.Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		IssuedAt:  numericTime(claims.IssuedAt),
		ExpiresAt: numericTime(claims.ExpiresAt),
	}, nil
}

// VerifyRefreshToken validates tokenString against the refresh secret. A
// token signed with the access secret fails here with INVALID_TOKEN.
func (s *Service) VerifyRefreshToken(tokenString string) (*domain.RefreshIdentity, error) {
	claims := &refreshClaims{}
	if err := s.parse(tokenString, claims, s.cfg.RefreshSecret); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewTokenExpired("Refresh token has expired")
		}
		return nil, domain.NewInvalidToken("Invalid refresh token")
	}
	return &domain.RefreshIdentity{
		UserID:    claims.Subject,
		IssuedAt:  numericTime(claims.IssuedAt),
		ExpiresAt: numericTime(claims.ExpiresAt),
	}, nil
}

func numericTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time
}

// DecodeUnverified extracts the claims of tokenString without checking
// signature or expiration. Returns nil when the token is not structurally
// parseable. Debugging and logging only — never an authorization input.
func (s *Service) DecodeUnverified(tokenString string) map[string]any {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	return claims
}

func (s *Service) parse(tokenString string, claims jwt.Claims, secret string) error {
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !tkn.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}
