package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultSessionPrefix = "user:"

// SessionStore keeps the single live token of each user.
type SessionStore interface {
	Save(ctx context.Context, userName, token string, ttl time.Duration) error
	Get(ctx context.Context, userName string) (string, error)
	Delete(ctx context.Context, userName string) error
	Ping(ctx context.Context) error
}

type RedisSessionStore struct {
	redis  redis.UniversalClient
	prefix string
}

func NewRedisSessionStore(client redis.UniversalClient, prefix string) *RedisSessionStore {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &RedisSessionStore{redis: client, prefix: prefix}
}

func (s *RedisSessionStore) key(userName string) string {
	return s.prefix + userName
}

func (s *RedisSessionStore) Save(ctx context.Context, userName, token string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key(userName), token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, userName string) (string, error) {
	token, err := s.redis.Get(ctx, s.key(userName)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return token, nil
}

// Delete is idempotent: deleting a missing session is not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, userName string) error {
	if err := s.redis.Del(ctx, s.key(userName)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return nil
}

func (s *RedisSessionStore) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return nil
}
