package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// MaxAttempts is the number of consecutive failures that locks an identity.
	MaxAttempts = 3
	// LockoutWindow is how long a maxed-out identity stays locked, and also
	// how long a partial failure streak survives without further failures.
	LockoutWindow = 15 * time.Minute

	attemptKeyPrefix = "login_attempts:"
)

// AttemptTracker counts consecutive failed authentication attempts per
// identity and enforces a time-boxed lockout after too many.
type AttemptTracker interface {
	// RecordFailure increments the failure count and returns the new count.
	RecordFailure(ctx context.Context, identity string) (int, error)
	// RecordSuccess clears any tracked failures for the identity.
	RecordSuccess(ctx context.Context, identity string) error
	// AttemptsRemaining reports how many failures remain before lockout.
	AttemptsRemaining(ctx context.Context, identity string) (int, error)
	// IsLockedOut reports whether the identity is currently locked.
	IsLockedOut(ctx context.Context, identity string) (bool, error)
}

type redisAttemptTracker struct {
	client *redis.Client
}

// NewAttemptTracker creates a Redis-backed AttemptTracker. Redis executes
// the increment server-side, so two concurrent failures for one identity
// can never both observe the same pre-lockout count, and the key TTL gives
// lazy expiry of stale streaks without a background sweep.
func NewAttemptTracker(client *redis.Client) AttemptTracker {
	return &redisAttemptTracker{client: client}
}

func attemptKey(identity string) string {
	return attemptKeyPrefix + strings.ToLower(identity)
}

func (t *redisAttemptTracker) RecordFailure(ctx context.Context, identity string) (int, error) {
	key := attemptKey(identity)

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to record login failure: %w", err)
	}
	// Refreshing the TTL on every failure makes the window run from the
	// most recent failure, so lockout at the 3rd failure lasts the full
	// window from that moment.
	if err := t.client.Expire(ctx, key, LockoutWindow).Err(); err != nil {
		return 0, fmt.Errorf("failed to set lockout window: %w", err)
	}
	return int(count), nil
}

func (t *redisAttemptTracker) RecordSuccess(ctx context.Context, identity string) error {
	if err := t.client.Del(ctx, attemptKey(identity)).Err(); err != nil {
		return fmt.Errorf("failed to clear login failures: %w", err)
	}
	return nil
}

func (t *redisAttemptTracker) AttemptsRemaining(ctx context.Context, identity string) (int, error) {
	count, err := t.failureCount(ctx, identity)
	if err != nil {
		return 0, err
	}
	remaining := MaxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (t *redisAttemptTracker) IsLockedOut(ctx context.Context, identity string) (bool, error) {
	count, err := t.failureCount(ctx, identity)
	if err != nil {
		return false, err
	}
	return count >= MaxAttempts, nil
}

func (t *redisAttemptTracker) failureCount(ctx context.Context, identity string) (int, error) {
	count, err := t.client.Get(ctx, attemptKey(identity)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read login failures: %w", err)
	}
	return count, nil
}
