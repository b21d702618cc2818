package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
)

// SessionStore keeps the single active refresh session per subject: key
// "session:<uid>" holds the SHA-256 of the last-issued refresh token with a
// TTL matching the token's expiry. Writes are last-writer-wins; a concurrent
// login from another device simply replaces the record.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID uuid.UUID) string {
	return "session:" + userID.String()
}

func hashToken(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return hex.EncodeToString(sum[:])
}

func (s *SessionStore) Record(ctx context.Context, userID uuid.UUID, refreshToken string, exp time.Time) error {
	return s.client.Set(ctx, sessionKey(userID), hashToken(refreshToken), safeTTL(exp)).Err()
}

func (s *SessionStore) Current(ctx context.Context, userID uuid.UUID) (string, error) {
	val, err := s.client.Get(ctx, sessionKey(userID)).Result()
	switch {
	case err == redis.Nil:
		return "", domainErrors.ErrNotFound
	case err != nil:
		return "", domainErrors.WrapInternal(err, "Current")
	}
	return val, nil
}

// Matches reports whether refreshToken is the subject's current session. A
// missing record reads as no match, not as an error.
func (s *SessionStore) Matches(ctx context.Context, userID uuid.UUID, refreshToken string) (bool, error) {
	current, err := s.Current(ctx, userID)
	switch {
	case domainErrors.IsNotFound(err):
		return false, nil
	case err != nil:
		return false, err
	}
	return current == hashToken(refreshToken), nil
}

func (s *SessionStore) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}

func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// key has to disappear even if the caller handed us a stale expiry
		return time.Minute
	}
	return ttl
}
