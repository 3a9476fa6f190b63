package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per email in a fixed Redis window.
type LoginLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int
	cooldown    time.Duration
}

func NewLoginLimiter(client redis.UniversalClient, maxAttempts int, cooldown time.Duration) *LoginLimiter {
	return &LoginLimiter{redis: client, maxAttempts: maxAttempts, cooldown: cooldown}
}

func loginKey(email string) string {
	return "login:" + strings.ToLower(strings.TrimSpace(email))
}

// Check returns ErrLoginRateLimited once the failure budget for email is spent.
func (l *LoginLimiter) Check(ctx context.Context, email string) error {
	count, err := l.redis.Get(ctx, loginKey(email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	if count >= int64(l.maxAttempts) {
		return ErrLoginRateLimited
	}
	return nil
}

// Fail records one failed attempt. The window starts at the first failure.
func (l *LoginLimiter) Fail(ctx context.Context, email string) error {
	key := loginKey(email)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.cooldown).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
		}
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.redis.Del(ctx, loginKey(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return nil
}
