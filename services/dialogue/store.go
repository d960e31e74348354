package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"tablemate/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "dining:sess:"

// SessionStore keeps the per-account dialogue aggregate in Redis as one
// JSON value with a TTL. Last write wins; the handler persists the whole
// session after every committed turn.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a SessionStore.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Get returns the stored session, or nil when the account has none.
func (s *SessionStore) Get(ctx context.Context, accountID string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+accountID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Set persists the session, refreshing its TTL.
func (s *SessionStore) Set(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now()
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sess.AccountID, b, s.ttl).Err()
}

// Clear removes the session.
func (s *SessionStore) Clear(ctx context.Context, accountID string) error {
	return s.client.Del(ctx, sessionPrefix+accountID).Err()
}
