package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"skillCompare/domain"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found or expired")

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func userTokenKey(userID string) string {
	return fmt.Sprintf("skillcompare-token:user:%s", userID)
}

func lookupTokenKey(token string) string {
	return fmt.Sprintf("skillcompare-token:lookup:%s", token)
}

// StoreToken keeps one active session per user. A previous token of the
// same user stops validating.
func (r *TokenRepository) StoreToken(ctx context.Context, data domain.TokenData, ttl time.Duration) error {
	if prev, err := r.GetTokenData(ctx, data.UserID); err == nil && prev.Token != data.Token {
		if err := r.client.Del(ctx, lookupTokenKey(prev.Token)).Err(); err != nil {
			return fmt.Errorf("failed to drop previous token: %w", err)
		}
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userTokenKey(data.UserID), jsonData, ttl)
	// reverse lookup token -> user_id for quick validation
	pipe.Set(ctx, lookupTokenKey(data.Token), data.UserID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	return nil
}

// GetTokenData retrieve token data by user ID
func (r *TokenRepository) GetTokenData(ctx context.Context, userID string) (*domain.TokenData, error) {
	val, err := r.client.Get(ctx, userTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var tokenData domain.TokenData
	if err := json.Unmarshal([]byte(val), &tokenData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token data: %w", err)
	}

	return &tokenData, nil
}

// ValidateToken returns the user id the token was issued to.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, lookupTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

// DeleteToken revokes the user's session.
func (r *TokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	if err := r.client.Del(ctx, userTokenKey(userID), lookupTokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
