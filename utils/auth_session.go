package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	SessionPrefix    = "session:"
	RevokedPrefix    = "revoked:"
	OAuthStatePrefix = "oauthState:"

	// SessionTTL bounds how long an OAuth session cookie stays valid.
	SessionTTL = 7 * 24 * time.Hour
)

// Session is a server-side identity established by the OAuth handshake and
// referenced by an opaque cookie value.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveSession stores the session in Redis under the given opaque ID.
func SaveSession(client *redis.Client, sessionID string, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, SessionPrefix+sessionID, data, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by its opaque ID. Returns nil without error
// when no such session exists.
func GetSession(client *redis.Client, sessionID string) (*Session, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, SessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session from Redis.
func DeleteSession(client *redis.Client, sessionID string) error {
	ctx := context.Background()
	return client.Del(ctx, SessionPrefix+sessionID).Err()
}

// RevokeToken adds a bearer token's hash to the denylist until the token's own
// expiry; after that the signature check rejects it anyway.
func RevokeToken(client *redis.Client, tokenHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	ctx := context.Background()
	return client.Set(ctx, RevokedPrefix+tokenHash, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token hash is on the denylist.
func IsTokenRevoked(client *redis.Client, tokenHash string) (bool, error) {
	ctx := context.Background()
	_, err := client.Get(ctx, RevokedPrefix+tokenHash).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SaveOAuthState stores a state nonce for the in-flight OAuth handshake.
func SaveOAuthState(client *redis.Client, state string) error {
	ctx := context.Background()
	return client.Set(ctx, OAuthStatePrefix+state, "1", 10*time.Minute).Err()
}

// ConsumeOAuthState checks and deletes a state nonce; a nonce is single-use.
func ConsumeOAuthState(client *redis.Client, state string) (bool, error) {
	ctx := context.Background()
	deleted, err := client.Del(ctx, OAuthStatePrefix+state).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
