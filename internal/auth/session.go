package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	SessionTTL    = 24 * time.Hour
	SessionCookie = "session_id"
)

// SessionStore wraps Redis for session management. Each session is an
// opaque token mapped to a single user id.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Create stores a new session mapping token -> userID and returns the token.
func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.New().String()
	err := s.rdb.Set(ctx, "session:"+token, userID, SessionTTL).Err()
	return token, err
}

// Resolve returns the user id for a session, or 0 if the token is
// missing, expired, or invalid.
func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	userID, err := s.rdb.Get(ctx, "session:"+token).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Destroy invalidates a session.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, "session:"+token).Err()
}
