package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestTracker(t *testing.T) (AttemptTracker, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewAttemptTracker(client), mr
}

func recordFailures(t *testing.T, tracker AttemptTracker, identity string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := tracker.RecordFailure(context.Background(), identity); err != nil {
			t.Fatalf("RecordFailure() error = %v", err)
		}
	}
}

// =============================================================================
// AttemptTracker Tests
// =============================================================================

func TestRecordFailure_CountsConsecutively(t *testing.T) {
	tracker, _ := setupTestTracker(t)
	ctx := context.Background()

	for want := 1; want <= MaxAttempts; want++ {
		count, err := tracker.RecordFailure(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("RecordFailure() error = %v", err)
		}
		if count != want {
			t.Errorf("RecordFailure() count = %d, want %d", count, want)
		}
	}
}

func TestIsLockedOut(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		want     bool
	}{
		{name: "no failures", failures: 0, want: false},
		{name: "one failure", failures: 1, want: false},
		{name: "two failures", failures: 2, want: false},
		{name: "three failures locks", failures: 3, want: true},
		{name: "beyond maximum stays locked", failures: 4, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _ := setupTestTracker(t)
			recordFailures(t, tracker, "a@x.com", tt.failures)

			locked, err := tracker.IsLockedOut(context.Background(), "a@x.com")
			if err != nil {
				t.Fatalf("IsLockedOut() error = %v", err)
			}
			if locked != tt.want {
				t.Errorf("IsLockedOut() = %v, want %v", locked, tt.want)
			}
		})
	}
}

func TestAttemptsRemaining(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		want     int
	}{
		{name: "fresh identity", failures: 0, want: 3},
		{name: "one failure", failures: 1, want: 2},
		{name: "two failures", failures: 2, want: 1},
		{name: "locked", failures: 3, want: 0},
		{name: "never negative", failures: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _ := setupTestTracker(t)
			recordFailures(t, tracker, "a@x.com", tt.failures)

			remaining, err := tracker.AttemptsRemaining(context.Background(), "a@x.com")
			if err != nil {
				t.Fatalf("AttemptsRemaining() error = %v", err)
			}
			if remaining != tt.want {
				t.Errorf("AttemptsRemaining() = %d, want %d", remaining, tt.want)
			}
		})
	}
}

func TestRecordSuccess_ClearsFailures(t *testing.T) {
	tracker, _ := setupTestTracker(t)
	ctx := context.Background()

	recordFailures(t, tracker, "a@x.com", 2)
	if err := tracker.RecordSuccess(ctx, "a@x.com"); err != nil {
		t.Fatalf("RecordSuccess() error = %v", err)
	}

	remaining, err := tracker.AttemptsRemaining(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("AttemptsRemaining() error = %v", err)
	}
	if remaining != MaxAttempts {
		t.Errorf("AttemptsRemaining() after success = %d, want %d", remaining, MaxAttempts)
	}

	// One new failure after a success must count as the first, not the third.
	count, err := tracker.RecordFailure(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("RecordFailure() error = %v", err)
	}
	if count != 1 {
		t.Errorf("RecordFailure() after success = %d, want 1", count)
	}
}

func TestLockoutWindow_ExpiresLazily(t *testing.T) {
	tracker, mr := setupTestTracker(t)
	ctx := context.Background()

	recordFailures(t, tracker, "a@x.com", MaxAttempts)

	locked, err := tracker.IsLockedOut(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("IsLockedOut() error = %v", err)
	}
	if !locked {
		t.Fatal("IsLockedOut() = false right after the third failure")
	}

	mr.FastForward(LockoutWindow + time.Second)

	locked, err = tracker.IsLockedOut(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("IsLockedOut() error = %v", err)
	}
	if locked {
		t.Error("IsLockedOut() = true after the lockout window elapsed")
	}
}

func TestWindowExpiry_ResetsStreak(t *testing.T) {
	tracker, mr := setupTestTracker(t)
	ctx := context.Background()

	recordFailures(t, tracker, "a@x.com", 1)
	mr.FastForward(LockoutWindow + time.Second)

	// A failure after the window is the start of a new streak.
	count, err := tracker.RecordFailure(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("RecordFailure() error = %v", err)
	}
	if count != 1 {
		t.Errorf("RecordFailure() after window expiry = %d, want 1", count)
	}
}

func TestRecordFailure_RefreshesWindow(t *testing.T) {
	tracker, mr := setupTestTracker(t)
	ctx := context.Background()

	recordFailures(t, tracker, "a@x.com", 1)
	mr.FastForward(LockoutWindow - time.Minute)
	recordFailures(t, tracker, "a@x.com", 1)
	// The second failure restarted the window, so the streak survives
	// another near-window gap.
	mr.FastForward(LockoutWindow - time.Minute)

	count, err := tracker.RecordFailure(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("RecordFailure() error = %v", err)
	}
	if count != MaxAttempts {
		t.Errorf("RecordFailure() = %d, want %d", count, MaxAttempts)
	}
}

func TestTracker_IdentitiesAreIndependent(t *testing.T) {
	tracker, _ := setupTestTracker(t)

	recordFailures(t, tracker, "a@x.com", MaxAttempts)

	locked, err := tracker.IsLockedOut(context.Background(), "b@x.com")
	if err != nil {
		t.Fatalf("IsLockedOut() error = %v", err)
	}
	if locked {
		t.Error("lockout of one identity leaked to another")
	}
}

func TestTracker_IdentityCaseInsensitive(t *testing.T) {
	tracker, _ := setupTestTracker(t)

	recordFailures(t, tracker, "A@X.com", MaxAttempts)

	locked, err := tracker.IsLockedOut(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("IsLockedOut() error = %v", err)
	}
	if !locked {
		t.Error("identity keying is case-sensitive; lockout can be bypassed by recasing")
	}
}
