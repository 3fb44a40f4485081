package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const defaultKeyPrefix = "experience:"

// SessionStore keeps admin login sessions in redis, one key per session id
// holding the signed-in email.
type SessionStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore stores sessions under <keyPrefix>session:<id>. An empty
// keyPrefix uses "experience:".
func NewSessionStore(rdb *redis.Client, keyPrefix string, ttl time.Duration) *SessionStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &SessionStore{rdb: rdb, prefix: keyPrefix + "session:", ttl: ttl}
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

func (s *SessionStore) TTL() time.Duration { return s.ttl }

// Create starts a session for email and returns its id.
func (s *SessionStore) Create(ctx context.Context, email string) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(id), email, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the email bound to the session id.
func (s *SessionStore) Get(ctx context.Context, id string) (string, error) {
	email, err := s.rdb.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return email, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}
