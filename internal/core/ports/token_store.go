package ports

import (
	"context"
	"time"
)

// RefreshTokenStore keeps the currently valid refresh token per user so that
// refresh tokens can be rotated and revoked. Backed by Redis in production.
type RefreshTokenStore interface {
	// Save replaces the stored refresh token for userID, expiring after ttl.
	Save(ctx context.Context, userID, tokenString string, ttl time.Duration) error
	// Get returns the stored refresh token for userID, or "" when none is stored.
	Get(ctx context.Context, userID string) (string, error)
	// Delete revokes the stored refresh token for userID.
	Delete(ctx context.Context, userID string) error
}
