package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the current refresh token per user in Redis, so tokens can
// be rotated on every refresh and revoked on logout. One key per user:
// refresh:<user_id> → token string, expiring with the token itself.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Save replaces the stored refresh token for userID.
func (s *TokenStore) Save(ctx context.Context, userID, tokenString string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), tokenString, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Get returns the stored refresh token for userID, or "" when none is stored.
func (s *TokenStore) Get(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return val, nil
}

// Delete revokes the stored refresh token for userID.
func (s *TokenStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(userID string) string {
	return "refresh:" + userID
}
